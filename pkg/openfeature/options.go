package openfeature

import (
	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	log "github.com/sirupsen/logrus"
)

// EvaluationOptions configures one evaluation.
type EvaluationOptions struct {
	hooks     []hook.Hook
	hookHints hook.Hints
}

func (e EvaluationOptions) Hooks() []hook.Hook {
	return e.hooks
}

func (e EvaluationOptions) HookHints() hook.Hints {
	return e.hookHints
}

// Option configures an evaluation.
type Option func(*EvaluationOptions)

// WithHooks appends hooks that run for this evaluation only, after global and
// client hooks.
func WithHooks(hooks ...hook.Hook) Option {
	return func(o *EvaluationOptions) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithHookHints sets the hints passed to every hook callback.
func WithHookHints(hints map[string]interface{}) Option {
	return func(o *EvaluationOptions) {
		o.hookHints = hook.NewHints(hints)
	}
}

func newEvaluationOptions(opts []Option) EvaluationOptions {
	var options EvaluationOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type clientConfig struct {
	evaluationContext model.EvaluationContext
	hooks             []hook.Hook
	logger            log.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

func WithClientEvaluationContext(evalCtx model.EvaluationContext) ClientOption {
	return func(c *clientConfig) {
		c.evaluationContext = evalCtx
	}
}

func WithClientHooks(hooks ...hook.Hook) ClientOption {
	return func(c *clientConfig) {
		c.hooks = append(c.hooks, hooks...)
	}
}

func WithLogger(logger log.FieldLogger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
