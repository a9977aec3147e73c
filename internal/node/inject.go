package node

import "math/rand"

// InjectionScheduler holds the single next-fire timestamp of the periodic
// value injection. The jitter is re-sampled on every re-arm so the schedule
// never settles onto exact period multiples.
type InjectionScheduler struct {
	periodMs int64
	jitterMs int64
	rng      *rand.Rand
	nextMs   int64
}

func NewInjectionScheduler(periodMs, jitterMs int64, rng *rand.Rand) *InjectionScheduler {
	return &InjectionScheduler{periodMs: periodMs, jitterMs: jitterMs, rng: rng}
}

// ComputeNext returns nowMs + base period + a uniform jitter sample in
// [0, maxJitter], both bounds inclusive.
func (s *InjectionScheduler) ComputeNext(nowMs int64) int64 {
	next := nowMs + s.periodMs
	if s.jitterMs > 0 {
		next += s.rng.Int63n(s.jitterMs + 1)
	}
	return next
}

// Rearm stores a freshly computed next-fire time. The caller re-arms after
// every firing; nothing else ever mutates the schedule.
func (s *InjectionScheduler) Rearm(nowMs int64) {
	s.nextMs = s.ComputeNext(nowMs)
}

// ShouldFire reports whether the stored next-fire time has been reached.
func (s *InjectionScheduler) ShouldFire(nowMs int64) bool {
	return nowMs >= s.nextMs
}

func (s *InjectionScheduler) NextFire() int64 {
	return s.nextMs
}
