package provider

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
)

const PassedInDefaultVariant = "Passed in default"

// NoopProvider returns the caller's default for every flag.
type NoopProvider struct{}

func (NoopProvider) Metadata() model.Metadata {
	return model.NewMetadata("NoopProvider", "")
}

func (NoopProvider) Hooks() []hook.Hook {
	return nil
}

func (NoopProvider) ResolveBooleanValue(_ context.Context, flagKey string, defaultValue bool, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	return defaultDetails(flagKey, model.Boolean, defaultValue), nil
}

func (NoopProvider) ResolveStringValue(_ context.Context, flagKey string, defaultValue string, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	return defaultDetails(flagKey, model.String, defaultValue), nil
}

func (NoopProvider) ResolveNumberValue(_ context.Context, flagKey string, defaultValue float64, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	return defaultDetails(flagKey, model.Number, defaultValue), nil
}

func (NoopProvider) ResolveObjectValue(_ context.Context, flagKey string, defaultValue map[string]interface{}, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	return defaultDetails(flagKey, model.Object, defaultValue), nil
}

func defaultDetails(flagKey string, flagType model.FlagType, defaultValue interface{}) model.FlagEvaluationDetails {
	return model.FlagEvaluationDetails{
		Key:      flagKey,
		FlagType: flagType,
		Value:    defaultValue,
		Variant:  PassedInDefaultVariant,
		Reason:   model.DefaultReason,
	}
}
