package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// Returned by Queue and ParseSteps for a step without a recognized
	// operation or task.
	ErrInvalidStep = errors.New("Invalid queue step")
)

// The operation a queue step performs.
type Op string

const (
	OpWait Op = "wait"
	OpLoop Op = "loop"
)

// One entry of a queue. Duration is relative to the previous step.
type Step struct {
	Op       Op
	Duration time.Duration
	Task     Task
}

func (st Step) validate() error {
	switch {
	case st.Op != OpWait && st.Op != OpLoop:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidStep, st.Op)
	case st.Task == nil:
		return fmt.Errorf("%w: %s step has no task", ErrInvalidStep, st.Op)
	case st.Duration < 0:
		return fmt.Errorf("%w: negative duration %s", ErrInvalidStep, st.Duration)
	}
	return nil
}

// A timeline of steps created by Queue. It emits EventEnded once, after the
// final step's task has run for the first time.
type Sequence struct {
	Notifier

	mutex   sync.Mutex
	handles []*Handle
	stopped bool
	once    sync.Once
	done    chan struct{}
}

// Schedules steps one after another: each step fires the sum of the
// durations of all steps up to and including it after now. When the final
// step is a loop, it starts iterating at that offset and keeps its own
// period. No step is scheduled if any step is invalid.
func (s *Scheduler) Queue(steps []Step) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps given", ErrInvalidStep)
	}
	for i, st := range steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	seq := &Sequence{done: make(chan struct{})}
	var cumulative time.Duration
	for i, st := range steps {
		cumulative += st.Duration
		task := st.Task
		if i < len(steps)-1 {
			if st.Op == OpLoop {
				seq.add(s.Loop(cumulative, task))
			} else {
				seq.add(s.Wait(cumulative, task))
			}
			continue
		}

		task = seq.wrap(task)
		if st.Op == OpLoop {
			interval := st.Duration
			seq.add(s.Wait(cumulative-interval, func(*Handle) {
				seq.add(s.Loop(interval, task))
			}))
		} else {
			seq.add(s.Wait(cumulative, task))
		}
	}
	return seq, nil
}

func (q *Sequence) wrap(task Task) Task {
	return func(h *Handle) {
		task(h)
		q.once.Do(func() {
			close(q.done)
			q.emit(EventEnded, h)
		})
	}
}

func (q *Sequence) add(h *Handle) {
	q.mutex.Lock()
	q.handles = append(q.handles, h)
	stopped := q.stopped
	q.mutex.Unlock()
	if stopped {
		h.Stop()
	}
}

// Returns the handles scheduled so far, in scheduling order. A final loop
// step appears once its first offset has been reached.
func (q *Sequence) Handles() []*Handle {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	handles := make([]*Handle, len(q.handles))
	copy(handles, q.handles)
	return handles
}

// Stops every step of the sequence, including a final loop which has not
// started yet.
func (q *Sequence) Stop() {
	q.mutex.Lock()
	q.stopped = true
	handles := make([]*Handle, len(q.handles))
	copy(handles, q.handles)
	q.mutex.Unlock()

	for _, h := range handles {
		h.Stop()
	}
}

// Returns a channel which is closed when EventEnded is emitted.
func (q *Sequence) Done() <-chan struct{} {
	return q.done
}
