package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDrain(t *testing.T) {
	s := newStore()
	a, b := &Handle{}, &Handle{}
	s.insert(100, a)
	s.insert(100, b)
	s.insert(200, &Handle{})

	assert.Equal(t, []*Handle{a, b}, s.drain(100))
	assert.Empty(t, s.drain(100))
	assert.Equal(t, 1, s.len())
	assert.Equal(t, int64(100), a.nextDueAt)

	_, ok := s.buckets[100]
	assert.False(t, ok)
	at, ok := s.next()
	assert.True(t, ok)
	assert.Equal(t, int64(200), at)
}

func TestStoreDrainDue(t *testing.T) {
	s := newStore()
	a, b, c, d := &Handle{}, &Handle{}, &Handle{}, &Handle{}
	s.insert(30, c)
	s.insert(10, a)
	s.insert(50, d)
	s.insert(10, b)

	assert.Nil(t, s.drainDue(5))
	assert.Equal(t, []*Handle{a, b, c}, s.drainDue(30))
	assert.Empty(t, s.drainDue(30))
	assert.Equal(t, 1, s.len())
	assert.Len(t, s.buckets, 1)
	assert.Equal(t, []int64{50}, s.keys)

	assert.Equal(t, []*Handle{d}, s.drainDue(1000))
	assert.Equal(t, 0, s.len())
	assert.Empty(t, s.buckets)
	_, ok := s.next()
	assert.False(t, ok)
}

func TestStoreKeepsKeysSorted(t *testing.T) {
	s := newStore()
	for _, at := range []int64{40, 10, 30, 20, 10, 50} {
		s.insert(at, &Handle{})
	}
	assert.Equal(t, []int64{10, 20, 30, 40, 50}, s.keys)

	s.drain(30)
	assert.Equal(t, []int64{10, 20, 40, 50}, s.keys)
	assert.Equal(t, 5, s.len())
}
