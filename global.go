package schedule

import (
	"context"
	"sync"
	"time"
)

var (
	globalMutex     sync.Mutex
	globalScheduler *Scheduler
)

func ensureScheduler() *Scheduler {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalScheduler == nil {
		globalScheduler = NewScheduler()
		globalScheduler.Start(context.Background())
	}
	return globalScheduler
}

// Ensures that the global scheduler is started
func Start() {
	ensureScheduler()
}

// See (*Scheduler).Wait
func Wait(delay time.Duration, task Task) *Handle {
	return ensureScheduler().Wait(delay, task)
}

// See (*Scheduler).Loop
func Loop(interval time.Duration, task Task) *Handle {
	return ensureScheduler().Loop(interval, task)
}

// See (*Scheduler).Queue
func Queue(steps []Step) (*Sequence, error) {
	return ensureScheduler().Queue(steps)
}

// Stops the global scheduler and discards its pending tasks. It is started
// again on next use.
func Shutdown() {
	globalMutex.Lock()
	s := globalScheduler
	globalScheduler = nil
	globalMutex.Unlock()

	if s != nil {
		s.Shutdown()
	}
}
