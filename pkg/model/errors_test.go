package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeOf(t *testing.T) {
	tests := map[string]struct {
		err  error
		want ErrorCode
	}{
		"nil":           {nil, ""},
		"plain error":   {errors.New("boom"), GeneralErrorCode},
		"flag missing":  {NewFlagNotFoundError("x"), FlagNotFoundErrorCode},
		"wrapped":       {fmt.Errorf("resolving: %w", NewTypeMismatchError("x")), TypeMismatchErrorCode},
		"not ready":     {NewProviderNotReadyError(""), ProviderNotReadyErrorCode},
		"parse":         {NewParseError(""), ParseErrorCode},
		"targeting key": {NewTargetingKeyMissingError(""), TargetingKeyMissingErrorCode},
		"context":       {NewInvalidContextError(""), InvalidContextErrorCode},
		"general":       {NewGeneralError(""), GeneralErrorCode},
		"empty code":    {&ResolutionError{Message: "no code"}, GeneralErrorCode},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeOf(tt.err))
		})
	}
}

func TestResolutionError_Error(t *testing.T) {
	assert.Equal(t, "FLAG_NOT_FOUND: flag foo not found", NewFlagNotFoundError("flag foo not found").Error())
	assert.Equal(t, "GENERAL", NewGeneralError("").Error())
}

func TestParseFlagType(t *testing.T) {
	ft, err := ParseFlagType("dict")
	assert.NoError(t, err)
	assert.Equal(t, Object, ft)

	_, err = ParseFlagType("date")
	assert.Error(t, err)

	assert.Equal(t, "BOOLEAN", Boolean.String())
	assert.Equal(t, "FlagType(9)", FlagType(9).String())
}
