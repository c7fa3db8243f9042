package main

import (
	"sort"
	"time"
)

// TimerHandle identifies a scheduled action. The zero value is never issued.
type TimerHandle uint64

type timer struct {
	handle TimerHandle
	fireAt float64 // scheduler clock seconds
	seq    uint64
	fn     func()
}

// Scheduler fires one-shot actions after a fixed delay, driven by the game
// tick. Actions whose deadlines elapse in the same tick fire in scheduling
// order (first scheduled fires first). The scheduler itself knows nothing
// about worlds; stale-world protection is the caller's epoch guard.
type Scheduler struct {
	now    float64
	seq    uint64
	nextID TimerHandle
	timers map[TimerHandle]*timer
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[TimerHandle]*timer)}
}

// Schedule queues fn to fire once after delay
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TimerHandle {
	s.nextID++
	s.seq++
	t := &timer{
		handle: s.nextID,
		fireAt: s.now + delay.Seconds(),
		seq:    s.seq,
		fn:     fn,
	}
	s.timers[t.handle] = t
	return t.handle
}

// Cancel discards a pending action. Cancelling a handle that already fired
// (or was never issued) is a no-op.
func (s *Scheduler) Cancel(h TimerHandle) {
	delete(s.timers, h)
}

// Pending returns the number of actions not yet fired
func (s *Scheduler) Pending() int { return len(s.timers) }

// Tick advances the clock by dt seconds and fires every action whose
// deadline has elapsed. Due actions are collected before any of them runs,
// so an action scheduling new work cannot make that work fire in the same
// tick even with a zero delay.
func (s *Scheduler) Tick(dt float64) {
	s.now += dt

	var due []*timer
	for _, t := range s.timers {
		if t.fireAt <= s.now {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].fireAt != due[j].fireAt {
			return due[i].fireAt < due[j].fireAt
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		delete(s.timers, t.handle)
	}
	for _, t := range due {
		t.fn()
	}
}
