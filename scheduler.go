package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Returned by Run when the scheduler is already running on another
	// goroutine.
	ErrAlreadyRunning = errors.New("This scheduler is already running")
)

// Scheduler owns a set of time buckets and dispatches the handles in them
// as they come due. Tasks only ever run on the goroutine calling Dispatch
// (or Run); Wait, Loop and Queue may be called from anywhere, including
// from within a task.
type Scheduler struct {
	opts    options
	store   *store
	metrics *metrics
	logger  zerolog.Logger
	wake    chan struct{}
	running atomic.Bool

	mutex  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Creates a new scheduler. It does not dispatch anything until Dispatch,
// Run or Start is called.
func NewScheduler(opts ...Option) *Scheduler {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.setDefaults()

	s := &Scheduler{
		opts:    o,
		store:   newStore(),
		metrics: newMetrics(o.name),
		logger:  o.logger.With().Str("scheduler", o.name).Logger(),
		wake:    make(chan struct{}, 1),
	}
	if o.registerer != nil {
		o.registerer.MustRegister(s.metrics.collectors()...)
	}
	return s
}

// Schedules task to run once, delay from now. A negative delay is replaced
// with DefaultDelay.
func (s *Scheduler) Wait(delay time.Duration, task Task) *Handle {
	return s.schedule(KindWait, delay, task)
}

// Schedules task to run every interval, starting one interval from now,
// until the returned handle is stopped. A negative interval is replaced
// with DefaultDelay; intervals shorter than a millisecond are rounded up.
func (s *Scheduler) Loop(interval time.Duration, task Task) *Handle {
	if interval >= 0 && interval < time.Millisecond {
		interval = time.Millisecond
	}
	return s.schedule(KindLoop, interval, task)
}

func (s *Scheduler) schedule(kind Kind, d time.Duration, task Task) *Handle {
	if d < 0 {
		d = DefaultDelay
	}
	now := s.opts.now()
	h := newHandle(kind, d, task, now)
	s.store.insert(now.UnixMilli()+d.Milliseconds(), h)
	s.metrics.scheduled.WithLabelValues(string(kind)).Inc()
	s.metrics.pending.Set(float64(s.store.len()))
	s.logger.Debug().
		Str("kind", string(kind)).
		Dur("interval", d).
		Msg("task scheduled")
	s.notify()
	return h
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Returns the number of handles waiting in the buckets, including stopped
// handles which have not yet been dropped.
func (s *Scheduler) Pending() int {
	return s.store.len()
}

// Runs one tick: every handle due at or before the current time is
// executed in due order, and loop handles which are still runnable are
// re-armed one interval after this tick. A panicking task is recovered and
// reported without affecting the rest of the tick.
func (s *Scheduler) Dispatch() {
	start := time.Now()
	now := s.opts.now()
	ms := now.UnixMilli()

	for _, h := range s.store.drainDue(ms) {
		ran, err := h.call(now)
		switch {
		case !ran:
			s.metrics.stops.Inc()
			s.logger.Debug().Str("kind", string(h.kind)).Msg("dropped stopped task")
		case err != nil:
			s.metrics.executions.WithLabelValues(string(h.kind)).Inc()
			s.metrics.failures.WithLabelValues(string(h.kind)).Inc()
			s.logger.Error().Err(err).Str("kind", string(h.kind)).Msg("task failed")
			h.emit(EventError, h)
		default:
			s.metrics.executions.WithLabelValues(string(h.kind)).Inc()
		}

		if h.kind == KindLoop && h.Runnable() {
			s.store.insert(ms+h.interval.Milliseconds(), h)
			s.logger.Debug().
				Dur("interval", h.interval).
				Int("calls", h.CallCount()).
				Msg("loop re-armed")
		}
	}

	s.metrics.pending.Set(float64(s.store.len()))
	s.metrics.tickDuration.Observe(time.Since(start).Seconds())
}

// Dispatches ticks until ctx is done. Between ticks it sleeps until the
// earliest pending bucket, a newly scheduled task, or the configured
// resolution, whichever comes first.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.logger.Debug().Msg("scheduler running")
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		s.Dispatch()

		sleep := s.opts.resolution
		if at, ok := s.store.next(); ok {
			if d := time.UnixMilli(at).Sub(s.opts.now()); d < sleep {
				sleep = d
			}
		}
		if sleep < 0 {
			sleep = 0
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(sleep)

		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		case <-s.wake:
		}
	}
}

// Starts dispatching on a background goroutine. Calling Start on a
// scheduler which was already started has no effect.
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		if err := s.Run(ctx); errors.Is(err, ErrAlreadyRunning) {
			s.logger.Error().Err(err).Msg("unable to start scheduler")
		}
	}(s.done)
}

// Stops the background goroutine started by Start and blocks until the
// current tick has finished. Pending handles stay in the buckets and will
// run if the scheduler is started again.
func (s *Scheduler) Shutdown() {
	s.mutex.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
