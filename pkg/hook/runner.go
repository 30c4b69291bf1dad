package hook

import (
	"context"
	"fmt"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	log "github.com/sirupsen/logrus"
)

// The runners take hooks in registration order (global, client, invocation,
// provider). Before hooks run in that order, all other stages run in reverse.

// RunBeforeHooks runs every before hook and applies returned contexts to
// hookCtx. The first failure stops the stage and is returned.
func RunBeforeHooks(ctx context.Context, hooks []Hook, hookCtx *HookContext, hints Hints) error {
	for _, h := range hooks {
		var next *model.EvaluationContext
		err := guard("before", func() error {
			var err error
			next, err = h.Before(ctx, hookCtx, hints)
			return err
		})
		if err != nil {
			return fmt.Errorf("before hook: %w", err)
		}
		if next != nil {
			hookCtx.evaluationContext = *next
		}
	}
	return nil
}

// RunAfterHooks runs the after hooks in reverse order. The first failure
// stops the stage and is returned.
func RunAfterHooks(ctx context.Context, hooks []Hook, hookCtx *HookContext, details model.FlagEvaluationDetails, hints Hints) error {
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		err := guard("after", func() error {
			return h.After(ctx, hookCtx, details, hints)
		})
		if err != nil {
			return fmt.Errorf("after hook: %w", err)
		}
	}
	return nil
}

// RunErrorHooks runs every error hook in reverse order. Failures are logged.
func RunErrorHooks(ctx context.Context, hooks []Hook, hookCtx *HookContext, evalErr error, hints Hints, logger log.FieldLogger) {
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		err := guard("error", func() error {
			return h.Error(ctx, hookCtx, evalErr, hints)
		})
		if err != nil {
			logger.Errorf("error running error hook: %v", err)
		}
	}
}

// RunFinallyHooks runs every finally hook in reverse order. Failures are logged.
func RunFinallyHooks(ctx context.Context, hooks []Hook, hookCtx *HookContext, hints Hints, logger log.FieldLogger) {
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		err := guard("finally", func() error {
			return h.Finally(ctx, hookCtx, hints)
		})
		if err != nil {
			logger.Errorf("error running finally hook: %v", err)
		}
	}
}

func guard(stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = model.NewGeneralError(fmt.Sprintf("%s hook panicked: %v", stage, r))
		}
	}()
	return fn()
}
