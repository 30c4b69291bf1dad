package model

// Reason explains why an evaluation produced its value.
type Reason string

const (
	DisabledReason       Reason = "DISABLED"
	SplitReason          Reason = "SPLIT"
	TargetingMatchReason Reason = "TARGETING_MATCH"
	DefaultReason        Reason = "DEFAULT"
	UnknownReason        Reason = "UNKNOWN"
	ErrorReason          Reason = "ERROR"
)

// ErrorCode classifies a failed evaluation. The empty code means no error.
type ErrorCode string

const (
	ProviderNotReadyErrorCode    ErrorCode = "PROVIDER_NOT_READY"
	FlagNotFoundErrorCode        ErrorCode = "FLAG_NOT_FOUND"
	ParseErrorCode               ErrorCode = "PARSE_ERROR"
	TypeMismatchErrorCode        ErrorCode = "TYPE_MISMATCH"
	TargetingKeyMissingErrorCode ErrorCode = "TARGETING_KEY_MISSING"
	InvalidContextErrorCode      ErrorCode = "INVALID_CONTEXT"
	GeneralErrorCode             ErrorCode = "GENERAL"
)
