package openfeature

import (
	"context"
	"fmt"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
)

// evaluate runs one evaluation: merge contexts, before hooks, provider, after
// hooks, error hooks on failure and finally hooks in every case. It never
// fails; errors become the caller's default with ErrorReason.
func (c *Client) evaluate(
	ctx context.Context,
	flagType model.FlagType,
	flagKey string,
	defaultValue interface{},
	invocationCtx model.EvaluationContext,
	opts []Option,
) model.FlagEvaluationDetails {
	options := newEvaluationOptions(opts)
	hints := options.HookHints()

	// global, client, invocation, provider
	hooks := append(c.api.Hooks(), c.Hooks()...)
	hooks = append(hooks, options.Hooks()...)
	hooks = append(hooks, c.provider.Hooks()...)

	// later contexts win on duplicate keys
	merged := model.MergeEvaluationContexts(
		c.api.EvaluationContext(),
		c.EvaluationContext(),
		invocationCtx,
	)

	hookCtx := hook.NewHookContext(flagKey, flagType, defaultValue, merged, c.metadata, c.provider.Metadata())

	details, err := c.resolve(ctx, hooks, hookCtx, hints)
	if err != nil {
		hook.RunErrorHooks(ctx, hooks, hookCtx, err, hints, c.logger)
		c.logger.Debugf("finished running error hooks for %s", hookCtx)

		details = model.FlagEvaluationDetails{
			Key:          flagKey,
			FlagType:     flagType,
			Value:        defaultValue,
			Reason:       model.ErrorReason,
			ErrorCode:    model.ErrorCodeOf(err),
			ErrorMessage: err.Error(),
		}
	}

	hook.RunFinallyHooks(ctx, hooks, hookCtx, hints, c.logger)
	c.logger.Debugf("finished running finally hooks for %s", hookCtx)

	return details
}

func (c *Client) resolve(ctx context.Context, hooks []hook.Hook, hookCtx *hook.HookContext, hints hook.Hints) (model.FlagEvaluationDetails, error) {
	if err := hook.RunBeforeHooks(ctx, hooks, hookCtx, hints); err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	c.logger.Debugf("finished running before hooks for %s", hookCtx)

	details, err := c.resolveWithProvider(ctx, hookCtx)
	if err != nil {
		return model.FlagEvaluationDetails{}, err
	}

	if err := hook.RunAfterHooks(ctx, hooks, hookCtx, details, hints); err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	c.logger.Debugf("finished running after hooks for %s", hookCtx)

	return details, nil
}

// resolveWithProvider calls the resolver matching the flag type with the
// evaluation context left by the before hooks.
func (c *Client) resolveWithProvider(ctx context.Context, hookCtx *hook.HookContext) (details model.FlagEvaluationDetails, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = model.NewGeneralError(fmt.Sprintf("provider %s panicked: %v", hookCtx.ProviderMetadata().Name, r))
		}
	}()

	flagKey := hookCtx.FlagKey()
	evalCtx := hookCtx.EvaluationContext()
	defaultValue := hookCtx.DefaultValue()

	switch hookCtx.FlagType() {
	case model.Boolean:
		if v, ok := defaultValue.(bool); ok {
			return c.provider.ResolveBooleanValue(ctx, flagKey, v, evalCtx)
		}
	case model.String:
		if v, ok := defaultValue.(string); ok {
			return c.provider.ResolveStringValue(ctx, flagKey, v, evalCtx)
		}
	case model.Number:
		if v, ok := defaultValue.(float64); ok {
			return c.provider.ResolveNumberValue(ctx, flagKey, v, evalCtx)
		}
	case model.Object:
		if v, ok := defaultValue.(map[string]interface{}); ok {
			return c.provider.ResolveObjectValue(ctx, flagKey, v, evalCtx)
		}
	default:
		return model.FlagEvaluationDetails{}, model.NewGeneralError(fmt.Sprintf("unknown flag type: %s", hookCtx.FlagType()))
	}
	return model.FlagEvaluationDetails{}, model.NewGeneralError(
		fmt.Sprintf("default value %v does not match flag type %s", defaultValue, hookCtx.FlagType()))
}
