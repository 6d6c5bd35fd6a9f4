package service

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tasker-app/tasker/internal/domain"
	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// Outcome is "success" or the lowercased error code of a failed use case.
func (e UseCaseEvent) Outcome() string {
	if e.Success {
		return "success"
	}
	return strings.ToLower(string(domain.CodeOf(e.Err)))
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes service use-case events to logger.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.Named("service")}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if event.Err == nil {
		o.logger.Info("service_use_case", fields...)
		return
	}

	fields = append(fields, zap.String("outcome", event.Outcome()), zap.Error(event.Err))
	// Expected business outcomes are not operational errors.
	if domain.CodeOf(event.Err) == domain.CodeInternal {
		o.logger.Error("service_use_case", fields...)
		return
	}
	o.logger.Warn("service_use_case", fields...)
}

// MetricsUseCaseObserver counts use cases by outcome and records their latency.
type MetricsUseCaseObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsUseCaseObserver registers the use-case collectors on reg.
func NewMetricsUseCaseObserver(reg prometheus.Registerer) (*MetricsUseCaseObserver, error) {
	o := &MetricsUseCaseObserver{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasker",
			Name:      "use_case_total",
			Help:      "Service use cases executed, by outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasker",
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
	}
	for _, c := range []prometheus.Collector{o.total, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *MetricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.total.WithLabelValues(event.Name, event.Outcome()).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

type multiUseCaseObserver []UseCaseObserver

// NewMultiUseCaseObserver fans events out to every non-nil observer.
func NewMultiUseCaseObserver(observers ...UseCaseObserver) UseCaseObserver {
	var m multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			m = append(m, obs)
		}
	}
	if len(m) == 0 {
		return NoopUseCaseObserver{}
	}
	return m
}

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}
