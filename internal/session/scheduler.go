package session

import (
	"container/heap"
	"sync"
	"time"
)

// Clock abstracts time so deferred callbacks can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

type task struct {
	at    time.Time
	seq   uint64
	fn    func()
	index int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs one-shot callbacks after a delay. Callbacks with the same
// deadline run in the order they were scheduled, one at a time, on the
// goroutine of the underlying timer.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	queue   taskQueue
	seq     uint64
	timer   Timer
	armedAt time.Time
	gen     uint64
	stopped bool
}

// NewScheduler creates a Scheduler. A nil clock means SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{clock: clock}
}

// Handle identifies a scheduled callback.
type Handle struct {
	s *Scheduler
	t *task
}

// Cancel prevents the callback from running. It reports whether the
// callback was still pending.
func (h Handle) Cancel() bool {
	if h.s == nil || h.t == nil {
		return false
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	if h.t.index < 0 {
		return false
	}
	heap.Remove(&h.s.queue, h.t.index)
	h.s.rearmLocked()
	return true
}

// Schedule runs fn once d has elapsed. After Stop it returns an inert Handle.
func (s *Scheduler) Schedule(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return Handle{}
	}
	if d < 0 {
		d = 0
	}
	t := &task{at: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.seq++
	heap.Push(&s.queue, t)
	s.rearmLocked()
	return Handle{s: s, t: t}
}

// Pending is the number of callbacks waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Stop cancels every pending callback. Later calls to Schedule are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = nil
	s.disarmLocked()
}

func (s *Scheduler) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// rearmLocked points the timer at the earliest pending deadline.
func (s *Scheduler) rearmLocked() {
	if len(s.queue) == 0 {
		s.disarmLocked()
		return
	}
	next := s.queue[0].at
	if s.timer != nil && s.armedAt.Equal(next) {
		return
	}
	s.disarmLocked()

	d := next.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	gen := s.gen
	s.armedAt = next
	s.timer = s.clock.AfterFunc(d, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// Superseded by a later rearm.
		s.mu.Unlock()
		return
	}
	s.timer = nil

	now := s.clock.Now()
	var due []*task
	for len(s.queue) > 0 && !s.queue[0].at.After(now) {
		due = append(due, heap.Pop(&s.queue).(*task))
	}
	s.rearmLocked()
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}
