package service

import (
	"context"
	"time"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now      func() time.Time
	loc      *time.Location
	observer UseCaseObserver
}

func defaultOptions() options {
	return options{
		now:      time.Now,
		loc:      time.Local,
		observer: NoopUseCaseObserver{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the time zone used to bucket sessions into calendar days.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithObserver reports every use case to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// observe reports a finished use case. err is the use case's final result.
func (o options) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	o.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
