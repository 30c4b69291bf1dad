package openfeature

import (
	"context"
	"sync"
	"testing"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobal_IsSingleton(t *testing.T) {
	assert.Same(t, Global(), Global())
	assert.Equal(t, "NoopProvider", Global().Provider().Metadata().Name)
}

func TestSetProvider_Nil_UsesNoop(t *testing.T) {
	api := newTestAPI()
	p, err := provider.NewInMemoryProvider(nil)
	require.NoError(t, err)
	api.SetProvider(p)

	api.SetProvider(nil)
	assert.Equal(t, "NoopProvider", api.Provider().Metadata().Name)

	var typedNil *provider.InMemoryProvider
	api.SetProvider(typedNil)
	assert.IsType(t, provider.NoopProvider{}, api.Provider())
}

func TestClient_BoundToProviderAtCreation(t *testing.T) {
	api := newTestAPI()
	first, err := provider.NewInMemoryProvider(map[string]interface{}{"greeting": "first"})
	require.NoError(t, err)
	second, err := provider.NewInMemoryProvider(map[string]interface{}{"greeting": "second"})
	require.NoError(t, err)

	api.SetProvider(first)
	early := api.Client("early", "")
	api.SetProvider(second)
	late := api.Client("late", "")

	ctx := context.Background()
	assert.Equal(t, "first", early.StringValue(ctx, "greeting", "", model.EvaluationContext{}))
	assert.Equal(t, "second", late.StringValue(ctx, "greeting", "", model.EvaluationContext{}))
}

func TestAPI_GlobalHooksAndContext_ReadAtEvaluation(t *testing.T) {
	var calls []string
	api := newTestAPI()
	client := api.Client("test", "")

	api.AddHooks(&recordingHook{name: "late-global", calls: &calls})
	api.SetEvaluationContext(model.NewEvaluationContext("global", nil))
	client.BooleanValue(context.Background(), "flag", false, model.EvaluationContext{})

	assert.Contains(t, calls, "late-global.before")
	assert.Equal(t, "global", api.EvaluationContext().TargetingKey())

	api.ClearHooks()
	assert.Empty(t, api.Hooks())
}

func TestAPI_ConcurrentUse(t *testing.T) {
	api := newTestAPI()
	p, err := provider.NewInMemoryProvider(map[string]interface{}{"flag": true})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			api.SetProvider(p)
			api.AddHooks(hook.UnimplementedHook{})
		}()
		go func() {
			defer wg.Done()
			details := api.Client("test", "").BooleanValueDetails(context.Background(), "flag", false, model.EvaluationContext{})
			assert.False(t, details.IsError())
		}()
	}
	wg.Wait()
}

func TestPackageHelpers_DelegateToGlobal(t *testing.T) {
	defer func() {
		SetProvider(provider.NoopProvider{})
		ClearHooks()
		SetEvaluationContext(model.EvaluationContext{})
	}()

	p, err := provider.NewInMemoryProvider(map[string]interface{}{"greeting": "hi"})
	require.NoError(t, err)
	SetProvider(p)
	SetEvaluationContext(model.NewEvaluationContext("user", nil))

	assert.Equal(t, "InMemoryProvider", ProviderMetadata().Name)
	assert.Equal(t, "hi", NewClient("app", "1").StringValue(context.Background(), "greeting", "", model.EvaluationContext{}))
}
