package openfeature

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
	hooks []hook.Hook
}

func (m *mockProvider) Metadata() model.Metadata {
	return model.NewMetadata("mockProvider", "0.1.0")
}

func (m *mockProvider) Hooks() []hook.Hook {
	return m.hooks
}

func (m *mockProvider) ResolveBooleanValue(ctx context.Context, flagKey string, defaultValue bool, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	args := m.Called(ctx, flagKey, defaultValue, evalCtx)
	return args.Get(0).(model.FlagEvaluationDetails), args.Error(1)
}

func (m *mockProvider) ResolveStringValue(ctx context.Context, flagKey string, defaultValue string, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	args := m.Called(ctx, flagKey, defaultValue, evalCtx)
	return args.Get(0).(model.FlagEvaluationDetails), args.Error(1)
}

func (m *mockProvider) ResolveNumberValue(ctx context.Context, flagKey string, defaultValue float64, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	args := m.Called(ctx, flagKey, defaultValue, evalCtx)
	return args.Get(0).(model.FlagEvaluationDetails), args.Error(1)
}

func (m *mockProvider) ResolveObjectValue(ctx context.Context, flagKey string, defaultValue map[string]interface{}, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	args := m.Called(ctx, flagKey, defaultValue, evalCtx)
	return args.Get(0).(model.FlagEvaluationDetails), args.Error(1)
}

// recordingHook appends "<name>.<stage>" to a shared log.
type recordingHook struct {
	hook.UnimplementedHook
	name       string
	calls      *[]string
	beforeCtx  *model.EvaluationContext
	beforeErr  error
	afterErr   error
	finallyErr error
	seenCtx    model.EvaluationContext
	seenHints  hook.Hints
	seenErr    error
}

func (r *recordingHook) Before(_ context.Context, hookCtx *hook.HookContext, hints hook.Hints) (*model.EvaluationContext, error) {
	*r.calls = append(*r.calls, r.name+".before")
	r.seenCtx = hookCtx.EvaluationContext()
	r.seenHints = hints
	return r.beforeCtx, r.beforeErr
}

func (r *recordingHook) After(context.Context, *hook.HookContext, model.FlagEvaluationDetails, hook.Hints) error {
	*r.calls = append(*r.calls, r.name+".after")
	return r.afterErr
}

func (r *recordingHook) Error(_ context.Context, _ *hook.HookContext, err error, _ hook.Hints) error {
	*r.calls = append(*r.calls, r.name+".error")
	r.seenErr = err
	return nil
}

func (r *recordingHook) Finally(context.Context, *hook.HookContext, hook.Hints) error {
	*r.calls = append(*r.calls, r.name+".finally")
	return r.finallyErr
}

func newTestAPI() *API {
	logger, _ := test.NewNullLogger()
	return NewAPI(logger)
}
