package hook

import (
	"context"
	"fmt"

	"github.com/open-feature/go-sdk-lite/pkg/model"
)

// Hook is attached to the evaluation lifecycle. Hooks may be registered on
// the API, on a client, on a single evaluation and by the provider.
//
// Before may return a replacement evaluation context; nil leaves the current
// one in place. An error from Before or After aborts the evaluation and the
// caller receives its default value. Errors from Error and Finally are logged
// and otherwise ignored.
type Hook interface {
	Before(ctx context.Context, hookCtx *HookContext, hints Hints) (*model.EvaluationContext, error)
	After(ctx context.Context, hookCtx *HookContext, details model.FlagEvaluationDetails, hints Hints) error
	Error(ctx context.Context, hookCtx *HookContext, err error, hints Hints) error
	Finally(ctx context.Context, hookCtx *HookContext, hints Hints) error
	// SupportsFlagValueType is advisory; the pipeline runs every hook for
	// every flag type and leaves the check to the hook itself.
	SupportsFlagValueType(flagType model.FlagType) bool
}

// UnimplementedHook can be embedded to implement only some callbacks.
type UnimplementedHook struct{}

func (UnimplementedHook) Before(context.Context, *HookContext, Hints) (*model.EvaluationContext, error) {
	return nil, nil
}

func (UnimplementedHook) After(context.Context, *HookContext, model.FlagEvaluationDetails, Hints) error {
	return nil
}

func (UnimplementedHook) Error(context.Context, *HookContext, error, Hints) error {
	return nil
}

func (UnimplementedHook) Finally(context.Context, *HookContext, Hints) error {
	return nil
}

func (UnimplementedHook) SupportsFlagValueType(model.FlagType) bool {
	return true
}

// HookContext describes the evaluation in progress. One HookContext is
// created per evaluation and must not be shared across evaluations.
type HookContext struct {
	flagKey           string
	flagType          model.FlagType
	defaultValue      interface{}
	evaluationContext model.EvaluationContext
	clientMetadata    model.Metadata
	providerMetadata  model.Metadata
}

func NewHookContext(
	flagKey string,
	flagType model.FlagType,
	defaultValue interface{},
	evaluationContext model.EvaluationContext,
	clientMetadata model.Metadata,
	providerMetadata model.Metadata,
) *HookContext {
	return &HookContext{
		flagKey:           flagKey,
		flagType:          flagType,
		defaultValue:      defaultValue,
		evaluationContext: evaluationContext,
		clientMetadata:    clientMetadata,
		providerMetadata:  providerMetadata,
	}
}

func (h *HookContext) FlagKey() string {
	return h.flagKey
}

func (h *HookContext) FlagType() model.FlagType {
	return h.flagType
}

func (h *HookContext) DefaultValue() interface{} {
	return h.defaultValue
}

// EvaluationContext is the merged context, as replaced by any before hooks
// that have run so far.
func (h *HookContext) EvaluationContext() model.EvaluationContext {
	return h.evaluationContext
}

func (h *HookContext) ClientMetadata() model.Metadata {
	return h.clientMetadata
}

func (h *HookContext) ProviderMetadata() model.Metadata {
	return h.providerMetadata
}

func (h *HookContext) String() string {
	return fmt.Sprintf("flag %s (%s) client %s provider %s",
		h.flagKey, h.flagType, h.clientMetadata.Name, h.providerMetadata.Name)
}

// Hints is an immutable map handed unchanged to every hook callback of one
// evaluation.
type Hints struct {
	values map[string]interface{}
}

func NewHints(values map[string]interface{}) Hints {
	copied := make(map[string]interface{}, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Hints{values: copied}
}

func (h Hints) Value(key string) (interface{}, bool) {
	v, ok := h.values[key]
	return v, ok
}

// AsMap returns a copy of the hints.
func (h Hints) AsMap() map[string]interface{} {
	copied := make(map[string]interface{}, len(h.values))
	for k, v := range h.values {
		copied[k] = v
	}
	return copied
}
