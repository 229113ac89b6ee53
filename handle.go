package schedule

import (
	"fmt"
	"sync"
	"time"
)

// The kind of a scheduled handle.
type Kind string

const (
	// Runs once, then is discarded.
	KindWait Kind = "wait"
	// Runs every interval until stopped.
	KindLoop Kind = "loop"
)

// A function scheduled with Wait or Loop. It receives its own handle, so it
// may inspect the call count or stop itself.
type Task func(h *Handle)

// Returned by Handle.Err when a task panicked while being dispatched.
type TaskError struct {
	Kind  Kind
	Call  int
	Value interface{}
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s task panicked on call %d: %v", e.Kind, e.Call, e.Value)
}

// Stores state for one scheduled unit of work. A wait handle runs once; a
// loop handle is re-armed after every run until Stop is called.
type Handle struct {
	Notifier

	kind      Kind
	interval  time.Duration
	task      Task
	createdAt time.Time

	mutex        sync.Mutex
	callCount    int
	lastCalledAt time.Time
	nextDueAt    int64
	runnable     bool
	err          error
}

func newHandle(kind Kind, interval time.Duration, task Task, now time.Time) *Handle {
	return &Handle{
		kind:         kind,
		interval:     interval,
		task:         task,
		createdAt:    now,
		lastCalledAt: now,
		runnable:     true,
	}
}

// Prevents any further execution of this handle, including one already due
// in the current tick. A running task is not interrupted. Calling Stop again
// only re-emits the stop event.
func (h *Handle) Stop() {
	h.mutex.Lock()
	h.runnable = false
	h.mutex.Unlock()
	h.emit(EventStop, h)
}

// Returns the number of times the task has been executed.
func (h *Handle) CallCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.callCount
}

// Returns the time of the most recent execution, or the creation time if
// the task has not run yet.
func (h *Handle) LastCalledAt() time.Time {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.lastCalledAt
}

// Returns the time this handle was scheduled.
func (h *Handle) CreatedAt() time.Time {
	return h.createdAt
}

// Returns the time of the bucket this handle is currently due in.
func (h *Handle) NextDueAt() time.Time {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return time.UnixMilli(h.nextDueAt).UTC()
}

func (h *Handle) Kind() Kind {
	return h.kind
}

// Returns the delay of a wait handle or the period of a loop handle.
func (h *Handle) Interval() time.Duration {
	return h.interval
}

// Returns false once Stop has been called.
func (h *Handle) Runnable() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.runnable
}

// Returns the failure of the most recent execution, if it panicked.
func (h *Handle) Err() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.err
}

func (h *Handle) setDue(at int64) {
	h.mutex.Lock()
	h.nextDueAt = at
	h.mutex.Unlock()
}

// Runs the task if the handle is still runnable, recovering a panic into a
// *TaskError. Reports whether the task was invoked.
func (h *Handle) call(now time.Time) (ran bool, err error) {
	h.mutex.Lock()
	if !h.runnable {
		h.mutex.Unlock()
		return false, nil
	}
	h.callCount++
	h.lastCalledAt = now
	h.err = nil
	call := h.callCount
	h.mutex.Unlock()

	defer func() {
		if v := recover(); v != nil {
			err = &TaskError{Kind: h.kind, Call: call, Value: v}
			h.mutex.Lock()
			h.err = err
			h.mutex.Unlock()
		}
	}()
	ran = true
	h.task(h)
	return ran, nil
}
