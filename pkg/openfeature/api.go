package openfeature

import (
	"reflect"
	"sync"

	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	log "github.com/sirupsen/logrus"
)

// API holds the active provider, the global evaluation context and the
// global hooks. Writes are visible to every reader once they return, but an
// evaluation already running may still use the previous provider.
type API struct {
	mx                sync.RWMutex
	provider          provider.IProvider
	evaluationContext model.EvaluationContext
	hooks             []hook.Hook
	logger            log.FieldLogger
}

// NewAPI returns an API using the no-op provider. Most programs use Global;
// NewAPI exists for tests and for programs that need isolated registries.
func NewAPI(logger log.FieldLogger) *API {
	if logger == nil {
		logger = log.WithField("component", "openfeature")
	}
	return &API{
		provider: provider.NoopProvider{},
		logger:   logger,
	}
}

var (
	globalAPI  *API
	globalOnce sync.Once
)

// Global returns the process-wide API, creating it on first use. It lives
// for the lifetime of the process.
func Global() *API {
	globalOnce.Do(func() {
		globalAPI = NewAPI(nil)
	})
	return globalAPI
}

// SetProvider replaces the active provider. Clients created earlier keep the
// provider they were created with. A nil provider is replaced by the no-op
// provider.
func (a *API) SetProvider(p provider.IProvider) {
	if isNil(p) {
		a.logger.Warn("provider cannot be nil, using NoopProvider")
		p = provider.NoopProvider{}
	}
	a.mx.Lock()
	a.provider = p
	a.mx.Unlock()
}

func (a *API) Provider() provider.IProvider {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.provider
}

func (a *API) SetEvaluationContext(evalCtx model.EvaluationContext) {
	a.mx.Lock()
	a.evaluationContext = evalCtx
	a.mx.Unlock()
}

func (a *API) EvaluationContext() model.EvaluationContext {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.evaluationContext
}

func (a *API) AddHooks(hooks ...hook.Hook) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.hooks = append(copyHooks(a.hooks), hooks...)
}

func (a *API) ClearHooks() {
	a.mx.Lock()
	a.hooks = nil
	a.mx.Unlock()
}

// Hooks returns a copy of the global hooks.
func (a *API) Hooks() []hook.Hook {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return copyHooks(a.hooks)
}

// Client returns a new client bound to the provider active right now.
func (a *API) Client(name string, version string, opts ...ClientOption) *Client {
	cfg := clientConfig{logger: a.logger}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return &Client{
		api:               a,
		metadata:          model.NewMetadata(name, version),
		provider:          a.Provider(),
		logger:            cfg.logger,
		hooks:             cfg.hooks,
		evaluationContext: cfg.evaluationContext,
	}
}

func SetProvider(p provider.IProvider) {
	Global().SetProvider(p)
}

func ProviderMetadata() model.Metadata {
	return Global().Provider().Metadata()
}

func SetEvaluationContext(evalCtx model.EvaluationContext) {
	Global().SetEvaluationContext(evalCtx)
}

func AddHooks(hooks ...hook.Hook) {
	Global().AddHooks(hooks...)
}

func ClearHooks() {
	Global().ClearHooks()
}

func NewClient(name string, version string, opts ...ClientOption) *Client {
	return Global().Client(name, version, opts...)
}

func copyHooks(hooks []hook.Hook) []hook.Hook {
	if len(hooks) == 0 {
		return nil
	}
	copied := make([]hook.Hook, len(hooks))
	copy(copied, hooks)
	return copied
}

func isNil(p provider.IProvider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
