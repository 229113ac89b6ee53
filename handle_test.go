package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallRecoversPanic(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	h := newHandle(KindWait, 0, func(*Handle) {
		panic("x")
	}, now)

	ran, err := h.call(now)
	assert.True(t, ran)
	require.Error(t, err)
	assert.Equal(t, "wait task panicked on call 1: x", err.Error())
	assert.Equal(t, err, h.Err())
	assert.Equal(t, 1, h.CallCount())
}

func TestCallSkipsStopped(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	h := newHandle(KindLoop, time.Second, func(*Handle) {
		t.Error("Stopped task was executed")
	}, now)
	h.Stop()

	ran, err := h.call(now.Add(time.Second))
	assert.False(t, ran)
	assert.NoError(t, err)
	assert.Equal(t, 0, h.CallCount())
	assert.True(t, h.LastCalledAt().Equal(now))
}

func TestCallClearsPreviousError(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	h := newHandle(KindLoop, time.Second, func(h *Handle) {
		if h.CallCount() == 1 {
			panic(errors.New("first call"))
		}
	}, now)

	_, err := h.call(now)
	require.Error(t, err)
	ran, err := h.call(now.Add(time.Second))
	assert.True(t, ran)
	assert.NoError(t, err)
	assert.NoError(t, h.Err())
}
