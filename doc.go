// schedule is an in-process timer for Go programs. It runs tasks once after
// a delay, or repeatedly at a fixed interval, from a single dispatching
// goroutine.
//
// A global scheduler is provided for simple use-cases. To use it:
//
//	import (
//		"time"
//
//		"git.sr.ht/~sircmpwn/schedule"
//	)
//
//	// ...
//	schedule.Wait(500*time.Millisecond, func(h *schedule.Handle) {
//		// Runs once, half a second from now
//	})
//
//	schedule.Loop(time.Second, func(h *schedule.Handle) {
//		if h.CallCount() == 5 {
//			h.Stop()
//		}
//	})
//
// The first time a task is submitted to the global scheduler, it will be
// initialized and start dispatching in the background.
//
// Steps can be chained with Queue. Each step fires relative to the end of
// the previous one, and the sequence emits EventEnded after the last step:
//
//	seq, err := schedule.Queue([]schedule.Step{
//		{Op: schedule.OpWait, Duration: 100 * time.Millisecond, Task: a},
//		{Op: schedule.OpLoop, Duration: 50 * time.Millisecond, Task: b},
//	})
//	seq.On(schedule.EventEnded, func(h *schedule.Handle) {
//		// ...
//	})
//
// You may also manage your own schedulers. Use NewScheduler() to obtain
// one, Dispatch() to run all due tasks, and Run() or Start() to dispatch
// automatically.
package schedule
