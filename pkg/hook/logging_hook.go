package hook

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	log "github.com/sirupsen/logrus"
)

// LoggingHook logs every stage of an evaluation.
type LoggingHook struct {
	logger                   log.FieldLogger
	includeEvaluationContext bool
}

func NewLoggingHook(logger log.FieldLogger, includeEvaluationContext bool) *LoggingHook {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LoggingHook{
		logger:                   logger,
		includeEvaluationContext: includeEvaluationContext,
	}
}

func (l *LoggingHook) fields(hookCtx *HookContext, stage string) log.Fields {
	fields := log.Fields{
		"stage":         stage,
		"flag_key":      hookCtx.FlagKey(),
		"flag_type":     hookCtx.FlagType().String(),
		"default_value": hookCtx.DefaultValue(),
		"domain":        hookCtx.ClientMetadata().Name,
		"provider_name": hookCtx.ProviderMetadata().Name,
	}
	if l.includeEvaluationContext {
		fields["targeting_key"] = hookCtx.EvaluationContext().TargetingKey()
		fields["evaluation_context"] = hookCtx.EvaluationContext().Attributes()
	}
	return fields
}

func (l *LoggingHook) Before(_ context.Context, hookCtx *HookContext, _ Hints) (*model.EvaluationContext, error) {
	l.logger.WithFields(l.fields(hookCtx, "before")).Debug("evaluating flag")
	return nil, nil
}

func (l *LoggingHook) After(_ context.Context, hookCtx *HookContext, details model.FlagEvaluationDetails, _ Hints) error {
	l.logger.WithFields(l.fields(hookCtx, "after")).WithFields(log.Fields{
		"reason":  details.Reason,
		"variant": details.Variant,
		"value":   details.Value,
	}).Debug("flag evaluated")
	return nil
}

func (l *LoggingHook) Error(_ context.Context, hookCtx *HookContext, err error, _ Hints) error {
	l.logger.WithFields(l.fields(hookCtx, "error")).WithFields(log.Fields{
		"error_code":    model.ErrorCodeOf(err),
		"error_message": err.Error(),
	}).Error("flag evaluation failed")
	return nil
}

func (l *LoggingHook) Finally(context.Context, *HookContext, Hints) error {
	return nil
}

func (l *LoggingHook) SupportsFlagValueType(model.FlagType) bool {
	return true
}
