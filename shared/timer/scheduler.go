// Package timer provides the tick-driven scheduler used by the simulation.
// Time only moves when Advance is called, so pausing the caller freezes
// every pending timer without losing its remaining time.
package timer

import "container/heap"

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle   Handle
	deadline float64
	interval float64 // > 0 for repeating timers
	seq      uint64
	fn       func()
	index    int
}

type queue []*entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *queue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler fires one-shot and repeating callbacks against accumulated
// simulation time.
type Scheduler struct {
	now       float64
	scale     float64
	paused    bool
	seq       uint64
	nextID    Handle
	pending   queue
	byHandle  map[Handle]*entry
	advancing bool
}

func New() *Scheduler {
	return &Scheduler{
		scale:    1,
		byHandle: make(map[Handle]*entry),
	}
}

// Now returns the accumulated simulation time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// After schedules fn once, delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) Handle {
	return s.schedule(delay, 0, fn)
}

// Every schedules fn every interval seconds, first firing one interval from
// now. A non-positive interval is treated as a one-shot.
func (s *Scheduler) Every(interval float64, fn func()) Handle {
	if interval <= 0 {
		return s.After(0, fn)
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(delay, interval float64, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	e := &entry{
		handle:   s.nextID,
		deadline: s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.pending, e)
	s.byHandle[e.handle] = e
	return e.handle
}

// Cancel stops a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(h Handle) bool {
	e, ok := s.byHandle[h]
	if !ok {
		return false
	}
	delete(s.byHandle, h)
	if e.index >= 0 {
		heap.Remove(&s.pending, e.index)
	}
	return true
}

// Active reports whether h is still pending.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.byHandle[h]
	return ok
}

// Remaining returns the time left before h fires, or 0 if it is not pending.
func (s *Scheduler) Remaining(h Handle) float64 {
	e, ok := s.byHandle[h]
	if !ok {
		return 0
	}
	return max(0, e.deadline-s.now)
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int { return len(s.byHandle) }

func (s *Scheduler) Pause() { s.paused = true }
func (s *Scheduler) Resume() { s.paused = false }
func (s *Scheduler) Paused() bool { return s.paused }

// SetTimeScale sets the multiplier applied by Scale. Negative values clamp to 0.
func (s *Scheduler) SetTimeScale(scale float64) { s.scale = max(0, scale) }
func (s *Scheduler) TimeScale() float64 { return s.scale }

// Scale converts a wall-clock frame delta into simulation time.
func (s *Scheduler) Scale(dt float64) float64 {
	if s.paused || dt <= 0 {
		return 0
	}
	return dt * s.scale
}

// Advance moves simulation time forward by dt and fires every timer whose
// deadline falls inside the step, in deadline order. Callbacks observe Now
// equal to their own deadline and may schedule or cancel timers.
func (s *Scheduler) Advance(dt float64) {
	if dt <= 0 || s.advancing {
		return
	}
	s.advancing = true
	defer func() { s.advancing = false }()

	target := s.now + dt
	for len(s.pending) > 0 {
		next := s.pending[0]
		if next.deadline > target {
			break
		}
		heap.Pop(&s.pending)
		s.now = max(s.now, next.deadline)
		if next.interval > 0 {
			next.deadline += next.interval
			heap.Push(&s.pending, next)
		} else {
			delete(s.byHandle, next.handle)
		}
		next.fn()
	}
	s.now = target
}
