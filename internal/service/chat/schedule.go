package chat

import (
	"sync"
	"time"
)

// Clock schedules delayed callbacks; tests swap in a manual implementation.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type step struct {
	delay time.Duration
	run   func()
}

// schedule is an ordered queue of delayed steps driven by a single timer.
// Every method must be called with lock held; the timer callback takes it itself.
type schedule struct {
	clock      Clock
	lock       sync.Locker
	pending    []step
	timer      Timer
	generation uint64
}

func newSchedule(clock Clock, lock sync.Locker) *schedule {
	return &schedule{clock: clock, lock: lock}
}

// push enqueues a step whose delay counts from when the previous step ran.
func (q *schedule) push(delay time.Duration, run func()) {
	q.pending = append(q.pending, step{delay: delay, run: run})
	q.arm()
}

// cancel drops every pending step; an already armed timer becomes a no-op.
func (q *schedule) cancel() {
	q.generation++
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.pending = nil
}

func (q *schedule) idle() bool {
	return q.timer == nil && len(q.pending) == 0
}

func (q *schedule) arm() {
	if q.timer != nil || len(q.pending) == 0 {
		return
	}
	gen := q.generation
	q.timer = q.clock.AfterFunc(q.pending[0].delay, func() { q.fire(gen) })
}

func (q *schedule) fire(gen uint64) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if gen != q.generation || len(q.pending) == 0 {
		return
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.timer = nil

	next.run()
	q.arm()
}
