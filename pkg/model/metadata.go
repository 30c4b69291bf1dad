package model

// Metadata identifies a client or a provider.
type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

func NewMetadata(name string, version string) Metadata {
	return Metadata{Name: name, Version: version}
}
