package game

import "sort"

// TimerID identifies a scheduled callback.
type TimerID int

type timer struct {
	id   TimerID
	name string
	due  float64
	gen  uint64
	fn   func()
}

// Scheduler runs deferred callbacks on simulated time. Every callback is
// bound to the generation current when it was scheduled; Invalidate bumps the
// generation so stale callbacks never fire.
type Scheduler struct {
	now        float64
	generation uint64
	nextID     TimerID
	pending    []*timer
}

// NewScheduler returns an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now is the simulated clock in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Generation is bumped by every Invalidate.
func (s *Scheduler) Generation() uint64 { return s.generation }

// Pending counts live callbacks.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Schedule runs fn once delay seconds of simulated time have passed.
func (s *Scheduler) Schedule(delay float64, name string, fn func()) TimerID {
	s.nextID++
	s.pending = append(s.pending, &timer{
		id:   s.nextID,
		name: name,
		due:  s.now + delay,
		gen:  s.generation,
		fn:   fn,
	})
	return s.nextID
}

// Cancel drops one callback. It reports whether it was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.pending {
		if t.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Invalidate discards every pending callback.
func (s *Scheduler) Invalidate() {
	s.generation++
	s.pending = nil
}

// Advance moves the clock forward and fires due callbacks in due order.
// It returns the names of the callbacks that ran.
func (s *Scheduler) Advance(dt float64) []string {
	if dt > 0 {
		s.now += dt
	}
	var fired []string
	for {
		t := s.popDue()
		if t == nil {
			return fired
		}
		// A callback fired earlier in this batch may have invalidated us.
		if t.gen != s.generation {
			continue
		}
		t.fn()
		fired = append(fired, t.name)
	}
}

func (s *Scheduler) popDue() *timer {
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].due < s.pending[j].due
	})
	if s.pending[0].due > s.now {
		return nil
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t
}
