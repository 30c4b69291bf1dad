package model

// FlagEvaluationDetails is the result of a single evaluation. Value holds a
// bool, string, float64 or map[string]interface{} depending on FlagType.
type FlagEvaluationDetails struct {
	Key          string      `json:"key"`
	FlagType     FlagType    `json:"-"`
	Value        interface{} `json:"value"`
	Variant      string      `json:"variant,omitempty"`
	Reason       Reason      `json:"reason"`
	ErrorCode    ErrorCode   `json:"errorCode,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

// IsError reports whether the evaluation failed.
func (d FlagEvaluationDetails) IsError() bool {
	return d.ErrorCode != ""
}
