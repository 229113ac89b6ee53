package schedule

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	// Used when Wait or Loop is given a negative duration.
	DefaultDelay = 10 * time.Millisecond

	// Longest the run loop sleeps when nothing is pending.
	DefaultResolution = 100 * time.Millisecond
)

type options struct {
	name       string
	now        func() time.Time
	resolution time.Duration
	logger     *zerolog.Logger
	registerer prometheus.Registerer
}

// Configures a Scheduler.
type Option func(*options)

func (o *options) setDefaults() {
	if o.name == "" {
		o.name = "default"
	}
	if o.now == nil {
		o.now = func() time.Time {
			return time.Now().UTC()
		}
	}
	if o.logger == nil {
		nop := zerolog.Nop()
		o.logger = &nop
	}
	if o.resolution <= 0 {
		o.resolution = DefaultResolution
	}
}

// Names the scheduler in logs and metric labels.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Sets the function the scheduler will use to obtain the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Sets the longest the run loop sleeps between ticks while idle.
func WithResolution(d time.Duration) Option {
	return func(o *options) {
		o.resolution = d
	}
}

// Sets the logger used to report task failures and lifecycle events.
// Logging is disabled by default.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// Registers the scheduler's metrics with r. Metrics are collected but not
// registered by default.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}
