package node

import (
	"math/rand"
	"testing"
)

func TestComputeNextStaysInJitterWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewInjectionScheduler(60_000, 10_000, rng)

	now := int64(5_000_000)
	for i := 0; i < 1000; i++ {
		next := s.ComputeNext(now)
		if next < now+60_000 || next > now+70_000 {
			t.Fatalf("next = %d outside [now+period, now+period+jitter]", next)
		}
	}
}

func TestComputeNextZeroJitterIsExactPeriod(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewInjectionScheduler(60_000, 0, rng)

	if next := s.ComputeNext(1000); next != 61_000 {
		t.Errorf("next = %d, want 61000", next)
	}
}

func TestRearmResamplesJitter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewInjectionScheduler(60_000, 10_000, rng)

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		s.Rearm(0)
		seen[s.NextFire()] = true
	}
	if len(seen) < 2 {
		t.Error("jitter never varied across re-arms")
	}
}

func TestShouldFire(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewInjectionScheduler(60_000, 0, rng)
	s.Rearm(1000) // next fire at 61000

	if s.ShouldFire(60_999) {
		t.Error("fired before next-fire time")
	}
	if !s.ShouldFire(61_000) {
		t.Error("did not fire at next-fire time")
	}
	if !s.ShouldFire(99_999) {
		t.Error("did not fire after next-fire time")
	}
}
