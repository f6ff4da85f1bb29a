// Package clock provides a virtual clock with cooperative delayed and
// repeating callbacks. Time only moves when the owner calls Advance, so
// callbacks run at tick boundaries and never preempt tick processing.
package clock

import (
	"container/heap"
	"time"
)

// Timer is a scheduled callback. Stop cancels it; calling Stop on a
// stopped or already-fired one-shot timer is a no-op.
type Timer struct {
	deadline time.Duration
	period   time.Duration // 0 for one-shot timers
	seq      uint64        // Tie-break so equal deadlines fire in scheduling order
	fn       func()
	stopped  bool
	index    int // Position in the heap, -1 when not queued
	owner    *Scheduler
}

// Stop cancels the timer. Returns true if the call stopped a pending timer.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	if t.index >= 0 && t.owner != nil {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Scheduler owns the virtual time and the pending timers.
// It is not safe for concurrent use; the game loop owns it.
type Scheduler struct {
	now     time.Duration
	nextSeq uint64
	queue   timerQueue
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After schedules fn to run once, delay after the current virtual time.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	return s.schedule(delay, 0, fn)
}

// Every schedules fn to run every period, first after one period.
func (s *Scheduler) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		panic("clock: non-positive period")
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(delay, period time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{
		deadline: s.now + delay,
		period:   period,
		seq:      s.nextSeq,
		fn:       fn,
		index:    -1,
		owner:    s,
	}
	s.nextSeq++
	heap.Push(&s.queue, t)
	return t
}

// Advance moves virtual time forward by d and runs every callback whose
// deadline falls inside the window, earliest first. Callbacks may schedule
// or stop timers; timers scheduled inside the window also run if due.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.deadline > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = t.deadline

		if t.period > 0 {
			t.deadline += t.period
			t.seq = s.nextSeq
			s.nextSeq++
			heap.Push(&s.queue, t)
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
}

// Reset cancels every pending timer. Virtual time keeps running.
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.stopped = true
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// timerQueue is a min-heap of timers ordered by deadline, then sequence.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
