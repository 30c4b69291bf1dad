package model

import "fmt"

// FlagType selects the provider resolver used for an evaluation and the type
// of value the caller expects back.
type FlagType int

const (
	Boolean FlagType = iota
	String
	Number
	Object
)

func (t FlagType) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case String:
		return "STRING"
	case Number:
		return "NUMBER"
	case Object:
		return "OBJECT"
	default:
		return fmt.Sprintf("FlagType(%d)", int(t))
	}
}

// ParseFlagType maps the lower case names used on the command line and in
// URLs onto a FlagType.
func ParseFlagType(name string) (FlagType, error) {
	switch name {
	case "boolean", "bool":
		return Boolean, nil
	case "string":
		return String, nil
	case "number", "float":
		return Number, nil
	case "object", "dict", "structured":
		return Object, nil
	}
	return 0, fmt.Errorf("unknown flag type %q", name)
}
