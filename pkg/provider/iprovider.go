package provider

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
)

// IProvider resolves flags. Each resolver returns details whose Value has the
// requested type, or a *model.ResolutionError describing why it could not.
// Resolvers must not block past the caller's context without reason.
type IProvider interface {
	Metadata() model.Metadata
	// Hooks run after global, client and invocation hooks.
	Hooks() []hook.Hook
	ResolveBooleanValue(ctx context.Context, flagKey string, defaultValue bool, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error)
	ResolveStringValue(ctx context.Context, flagKey string, defaultValue string, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error)
	ResolveNumberValue(ctx context.Context, flagKey string, defaultValue float64, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error)
	ResolveObjectValue(ctx context.Context, flagKey string, defaultValue map[string]interface{}, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error)
}

// StorageSetter is implemented by providers whose flag values can be replaced
// wholesale at runtime.
type StorageSetter interface {
	SetStorage(storage map[string]interface{}) error
}
