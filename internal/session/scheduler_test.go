package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsAfterDelay(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	ran := 0
	s.Schedule(500*time.Millisecond, func() { ran++ })

	clock.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, ran)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, s.Pending())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, ran, "callback must run once")
}

func TestSchedulerOrder(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	var order []string
	s.Schedule(2*time.Second, func() { order = append(order, "late") })
	s.Schedule(time.Second, func() { order = append(order, "first") })
	s.Schedule(time.Second, func() { order = append(order, "second") })
	s.Schedule(time.Second, func() { order = append(order, "third") })

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"first", "second", "third", "late"}, order)
}

func TestSchedulerCancel(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	ran := map[string]bool{}
	a := s.Schedule(time.Second, func() { ran["a"] = true })
	s.Schedule(2*time.Second, func() { ran["b"] = true })

	assert.True(t, a.Cancel())
	assert.False(t, a.Cancel(), "second cancel reports nothing pending")
	assert.Equal(t, 1, s.Pending())

	clock.Advance(3 * time.Second)
	assert.False(t, ran["a"])
	assert.True(t, ran["b"])

	assert.False(t, Handle{}.Cancel())
}

func TestSchedulerCancelAfterFire(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	h := s.Schedule(time.Second, func() {})
	clock.Advance(time.Second)
	assert.False(t, h.Cancel())
}

func TestSchedulerStop(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	ran := 0
	s.Schedule(time.Second, func() { ran++ })
	s.Schedule(2*time.Second, func() { ran++ })
	s.Stop()

	clock.Advance(time.Minute)
	assert.Equal(t, 0, ran)

	h := s.Schedule(time.Millisecond, func() { ran++ })
	clock.Advance(time.Second)
	assert.Equal(t, 0, ran, "schedule after stop is ignored")
	assert.False(t, h.Cancel())
}

func TestSchedulerCallbackMaySchedule(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(clock)

	var order []int
	s.Schedule(time.Second, func() {
		order = append(order, 1)
		s.Schedule(time.Second, func() { order = append(order, 2) })
	})

	clock.Advance(time.Second)
	assert.Equal(t, []int{1}, order)
	clock.Advance(time.Second)
	assert.Equal(t, []int{1, 2}, order)
}

func TestSchedulerSystemClock(t *testing.T) {
	s := NewScheduler(nil)
	defer s.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	s.Schedule(5*time.Millisecond, wg.Done)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "callback did not run")
	}
}
