package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalScheduler(t *testing.T) {
	defer Shutdown()
	Start()

	ran := make(chan int, 1)
	Wait(5*time.Millisecond, func(h *Handle) {
		ran <- h.CallCount()
	})
	select {
	case n := <-ran:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("Wait did not run")
	}

	ticks := make(chan struct{}, 2)
	h := Loop(5*time.Millisecond, func(h *Handle) {
		ticks <- struct{}{}
		if h.CallCount() == 2 {
			h.Stop()
		}
	})
	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("Loop did not iterate")
		}
	}
	assert.False(t, h.Runnable())

	seq, err := Queue([]Step{
		{Op: OpWait, Duration: 5 * time.Millisecond, Task: func(*Handle) {}},
		{Op: OpWait, Duration: 5 * time.Millisecond, Task: func(*Handle) {}},
	})
	require.NoError(t, err)
	select {
	case <-seq.Done():
	case <-time.After(time.Second):
		t.Fatal("Queue did not end")
	}
}
