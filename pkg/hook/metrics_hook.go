package hook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "openfeature"

// MetricsHook records prometheus metrics for evaluations.
type MetricsHook struct {
	UnimplementedHook

	evaluations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	active      *prometheus.GaugeVec
	duration    *prometheus.HistogramVec

	started sync.Map // *HookContext -> time.Time
}

// NewMetricsHook registers the hook's collectors with reg, or with the
// default registerer when reg is nil.
func NewMetricsHook(reg prometheus.Registerer) (*MetricsHook, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &MetricsHook{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "evaluations_total",
			Help:      "Number of successful flag evaluations.",
		}, []string{"flag_key", "flag_type", "reason", "variant"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "evaluation_errors_total",
			Help:      "Number of failed flag evaluations.",
		}, []string{"flag_key", "flag_type", "error_code"}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "evaluations_active",
			Help:      "Number of flag evaluations in progress.",
		}, []string{"flag_key"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of flag evaluations, including hooks.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"flag_key", "flag_type"}),
	}
	for _, c := range []prometheus.Collector{m.evaluations, m.errors, m.active, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("unable to register metric: %w", err)
		}
	}
	return m, nil
}

func (m *MetricsHook) Before(_ context.Context, hookCtx *HookContext, _ Hints) (*model.EvaluationContext, error) {
	// the same hook may be attached at more than one level
	if _, loaded := m.started.LoadOrStore(hookCtx, time.Now()); !loaded {
		m.active.WithLabelValues(hookCtx.FlagKey()).Inc()
	}
	return nil, nil
}

func (m *MetricsHook) After(_ context.Context, hookCtx *HookContext, details model.FlagEvaluationDetails, _ Hints) error {
	m.evaluations.WithLabelValues(
		hookCtx.FlagKey(),
		hookCtx.FlagType().String(),
		string(details.Reason),
		details.Variant,
	).Inc()
	return nil
}

func (m *MetricsHook) Error(_ context.Context, hookCtx *HookContext, err error, _ Hints) error {
	m.errors.WithLabelValues(
		hookCtx.FlagKey(),
		hookCtx.FlagType().String(),
		string(model.ErrorCodeOf(err)),
	).Inc()
	return nil
}

func (m *MetricsHook) Finally(_ context.Context, hookCtx *HookContext, _ Hints) error {
	// a before hook registered ahead of this one may have failed, in which
	// case Before never ran for this evaluation
	started, ok := m.started.LoadAndDelete(hookCtx)
	if !ok {
		return nil
	}
	m.active.WithLabelValues(hookCtx.FlagKey()).Dec()
	m.duration.WithLabelValues(hookCtx.FlagKey(), hookCtx.FlagType().String()).
		Observe(time.Since(started.(time.Time)).Seconds())
	return nil
}
