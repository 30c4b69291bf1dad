package hook

import (
	"context"
	"sync"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/open-feature/go-sdk-lite/pkg/hook"
	spanName   = "feature_flag.evaluation"
)

// TracingHook opens one span per evaluation, from the first before stage to
// the finally stage. Hooks cannot replace the context.Context handed to the
// provider, so spans started by a provider are siblings of the evaluation
// span, not children.
type TracingHook struct {
	UnimplementedHook

	tracer trace.Tracer
	spans  sync.Map // *HookContext -> trace.Span
}

// NewTracingHook uses the global tracer provider when tp is nil.
func NewTracingHook(tp trace.TracerProvider) *TracingHook {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingHook{tracer: tp.Tracer(tracerName)}
}

func (t *TracingHook) Before(ctx context.Context, hookCtx *HookContext, _ Hints) (*model.EvaluationContext, error) {
	if _, ok := t.spans.Load(hookCtx); ok {
		return nil, nil
	}
	_, span := t.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("feature_flag.key", hookCtx.FlagKey()),
		attribute.String("feature_flag.type", hookCtx.FlagType().String()),
		attribute.String("feature_flag.provider_name", hookCtx.ProviderMetadata().Name),
		attribute.String("feature_flag.client_name", hookCtx.ClientMetadata().Name),
	))
	t.spans.Store(hookCtx, span)
	return nil, nil
}

func (t *TracingHook) After(_ context.Context, hookCtx *HookContext, details model.FlagEvaluationDetails, _ Hints) error {
	if span, ok := t.span(hookCtx); ok {
		span.SetAttributes(
			attribute.String("feature_flag.variant", details.Variant),
			attribute.String("feature_flag.reason", string(details.Reason)),
		)
	}
	return nil
}

func (t *TracingHook) Error(_ context.Context, hookCtx *HookContext, err error, _ Hints) error {
	if span, ok := t.span(hookCtx); ok {
		span.SetAttributes(attribute.String("feature_flag.error_code", string(model.ErrorCodeOf(err))))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return nil
}

func (t *TracingHook) Finally(_ context.Context, hookCtx *HookContext, _ Hints) error {
	if span, ok := t.spans.LoadAndDelete(hookCtx); ok {
		span.(trace.Span).End()
	}
	return nil
}

func (t *TracingHook) span(hookCtx *HookContext) (trace.Span, bool) {
	span, ok := t.spans.Load(hookCtx)
	if !ok {
		return nil, false
	}
	return span.(trace.Span), true
}
