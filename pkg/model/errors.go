package model

import (
	"errors"
	"fmt"
)

// ResolutionError is the recognized error kind for flag resolution. Providers
// and hooks return it (possibly wrapped) to report a specific ErrorCode; any
// other error is reported as GENERAL.
type ResolutionError struct {
	Code    ErrorCode
	Message string
}

func (e *ResolutionError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewProviderNotReadyError(msg string) *ResolutionError {
	return &ResolutionError{Code: ProviderNotReadyErrorCode, Message: msg}
}

func NewFlagNotFoundError(msg string) *ResolutionError {
	return &ResolutionError{Code: FlagNotFoundErrorCode, Message: msg}
}

func NewParseError(msg string) *ResolutionError {
	return &ResolutionError{Code: ParseErrorCode, Message: msg}
}

func NewTypeMismatchError(msg string) *ResolutionError {
	return &ResolutionError{Code: TypeMismatchErrorCode, Message: msg}
}

func NewTargetingKeyMissingError(msg string) *ResolutionError {
	return &ResolutionError{Code: TargetingKeyMissingErrorCode, Message: msg}
}

func NewInvalidContextError(msg string) *ResolutionError {
	return &ResolutionError{Code: InvalidContextErrorCode, Message: msg}
}

func NewGeneralError(msg string) *ResolutionError {
	return &ResolutionError{Code: GeneralErrorCode, Message: msg}
}

// ErrorCodeOf returns the code of the first ResolutionError in err's chain,
// GENERAL when there is none and the empty code for a nil error.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var resErr *ResolutionError
	if errors.As(err, &resErr) && resErr.Code != "" {
		return resErr.Code
	}
	return GeneralErrorCode
}
