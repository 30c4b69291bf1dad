package model

import "encoding/json"

const (
	EnabledState  = "ENABLED"
	DisabledState = "DISABLED"
)

// Flag is a single flag definition as found in a flag definition document.
type Flag struct {
	State          string                 `json:"state"`
	DefaultVariant string                 `json:"defaultVariant"`
	Variants       map[string]interface{} `json:"variants"`
	Targeting      json.RawMessage        `json:"targeting,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	Key            string                 `json:"-"`
}

// Flags is a flag definition document.
type Flags struct {
	Flags map[string]Flag `json:"flags"`
}
