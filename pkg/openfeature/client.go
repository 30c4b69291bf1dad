package openfeature

import (
	"context"
	"sync"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	log "github.com/sirupsen/logrus"
)

// Client evaluates flags against the provider that was active when it was
// created. Its hooks and evaluation context are private to it.
type Client struct {
	api      *API
	metadata model.Metadata
	provider provider.IProvider
	logger   log.FieldLogger

	mx                sync.RWMutex
	hooks             []hook.Hook
	evaluationContext model.EvaluationContext
}

func (c *Client) Metadata() model.Metadata {
	return c.metadata
}

func (c *Client) AddHooks(hooks ...hook.Hook) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.hooks = append(copyHooks(c.hooks), hooks...)
}

func (c *Client) ClearHooks() {
	c.mx.Lock()
	c.hooks = nil
	c.mx.Unlock()
}

func (c *Client) Hooks() []hook.Hook {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return copyHooks(c.hooks)
}

func (c *Client) SetEvaluationContext(evalCtx model.EvaluationContext) {
	c.mx.Lock()
	c.evaluationContext = evalCtx
	c.mx.Unlock()
}

func (c *Client) EvaluationContext() model.EvaluationContext {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.evaluationContext
}

// The Value getters return the Value of the matching Details getter, or the
// default when the provider returned a value of the wrong type.

func (c *Client) BooleanValue(ctx context.Context, flagKey string, defaultValue bool, evalCtx model.EvaluationContext, opts ...Option) bool {
	details := c.BooleanValueDetails(ctx, flagKey, defaultValue, evalCtx, opts...)
	value, ok := details.Value.(bool)
	if !ok {
		return defaultValue
	}
	return value
}

func (c *Client) BooleanValueDetails(ctx context.Context, flagKey string, defaultValue bool, evalCtx model.EvaluationContext, opts ...Option) model.FlagEvaluationDetails {
	return c.evaluate(ctx, model.Boolean, flagKey, defaultValue, evalCtx, opts)
}

func (c *Client) StringValue(ctx context.Context, flagKey string, defaultValue string, evalCtx model.EvaluationContext, opts ...Option) string {
	details := c.StringValueDetails(ctx, flagKey, defaultValue, evalCtx, opts...)
	value, ok := details.Value.(string)
	if !ok {
		return defaultValue
	}
	return value
}

func (c *Client) StringValueDetails(ctx context.Context, flagKey string, defaultValue string, evalCtx model.EvaluationContext, opts ...Option) model.FlagEvaluationDetails {
	return c.evaluate(ctx, model.String, flagKey, defaultValue, evalCtx, opts)
}

func (c *Client) NumberValue(ctx context.Context, flagKey string, defaultValue float64, evalCtx model.EvaluationContext, opts ...Option) float64 {
	details := c.NumberValueDetails(ctx, flagKey, defaultValue, evalCtx, opts...)
	value, ok := details.Value.(float64)
	if !ok {
		return defaultValue
	}
	return value
}

func (c *Client) NumberValueDetails(ctx context.Context, flagKey string, defaultValue float64, evalCtx model.EvaluationContext, opts ...Option) model.FlagEvaluationDetails {
	return c.evaluate(ctx, model.Number, flagKey, defaultValue, evalCtx, opts)
}

func (c *Client) ObjectValue(ctx context.Context, flagKey string, defaultValue map[string]interface{}, evalCtx model.EvaluationContext, opts ...Option) map[string]interface{} {
	details := c.ObjectValueDetails(ctx, flagKey, defaultValue, evalCtx, opts...)
	value, ok := details.Value.(map[string]interface{})
	if !ok {
		return defaultValue
	}
	return value
}

func (c *Client) ObjectValueDetails(ctx context.Context, flagKey string, defaultValue map[string]interface{}, evalCtx model.EvaluationContext, opts ...Option) model.FlagEvaluationDetails {
	return c.evaluate(ctx, model.Object, flagKey, defaultValue, evalCtx, opts)
}
