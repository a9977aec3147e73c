package sensor

import (
	"math"
	"math/rand"
)

// Synthetic produces a slowly drifting reading around a base value, used on
// hosts without a readable thermal zone.
type Synthetic struct {
	base float64
	amp  float64
	rng  *rand.Rand
	step float64
}

func NewSynthetic(base, amp float64, rng *rand.Rand) *Synthetic {
	return &Synthetic{base: base, amp: amp, rng: rng}
}

func (s *Synthetic) Read() float64 {
	s.step += 0.05
	return s.base + s.amp*math.Sin(s.step) + s.rng.Float64()*0.1
}
