package clock

import "time"

// maxCatchUp bounds how many periods a single interval may fire in one Advance
// after the loop stalled (suspend, debugger).
const maxCatchUp = 240

// Timer is a handle to a scheduled interval.
type Timer interface {
	Stop()
}

// Scheduler holds intervals and fires them from Advance.
type Scheduler struct {
	now    Provider
	timers []*interval
	seq    uint64
}

type interval struct {
	id      uint64
	period  time.Duration
	next    time.Time
	fn      func()
	stopped bool
	// fires in the current Advance
	burst int
}

func (i *interval) Stop() { i.stopped = true }

func NewScheduler(now Provider) *Scheduler {
	if now == nil {
		now = Real{}
	}
	return &Scheduler{now: now}
}

// Every schedules fn to run once per period, first after one full period.
func (s *Scheduler) Every(period time.Duration, fn func()) Timer {
	if period <= 0 {
		period = time.Millisecond
	}
	s.seq++
	t := &interval{id: s.seq, period: period, next: s.now.Now().Add(period), fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Pending reports the number of live intervals.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance fires every interval due at or before now, earliest due time first
// across all intervals (ties go to the older interval). Callbacks may stop
// intervals (their own or others) and schedule new ones; new intervals are
// not considered until the next Advance.
func (s *Scheduler) Advance(now time.Time) {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			t.burst = 0
			live = append(live, t)
		}
	}
	s.timers = live
	due := append([]*interval(nil), s.timers...)
	for {
		t := earliestDue(due, now)
		if t == nil {
			return
		}
		if t.burst == maxCatchUp {
			t.next = now.Add(t.period)
			continue
		}
		t.next = t.next.Add(t.period)
		t.burst++
		t.fn()
	}
}

func earliestDue(timers []*interval, now time.Time) *interval {
	var best *interval
	for _, t := range timers {
		if t.stopped || t.next.After(now) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Scope groups timers so an owner can cancel everything it started at once.
type Scope struct {
	sched  *Scheduler
	timers []Timer
	closed bool
}

func (s *Scheduler) NewScope() *Scope {
	return &Scope{sched: s}
}

// Every schedules an interval owned by the scope. A cancelled scope returns a
// timer that never fires.
func (c *Scope) Every(period time.Duration, fn func()) Timer {
	if c.closed {
		return &interval{stopped: true}
	}
	t := c.sched.Every(period, fn)
	c.timers = append(c.timers, t)
	return t
}

// Cancel stops every timer started through the scope.
func (c *Scope) Cancel() {
	if c == nil {
		return
	}
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
	c.closed = true
}
