package node

import "mesh_node/internal/radio"

// AdvertiseBurst owns the broadcast primitive and time-boxes every
// transmission: Start begins broadcasting immediately and Service stops the
// broadcast once the deadline passes. There is no asynchronous stop timer;
// Service must be called frequently from the run loop.
type AdvertiseBurst struct {
	radio      radio.Broadcaster
	intervalMs int

	active     bool
	deadlineMs int64
	payload    []byte
}

func NewAdvertiseBurst(b radio.Broadcaster, intervalMs int) *AdvertiseBurst {
	return &AdvertiseBurst{radio: b, intervalMs: intervalMs}
}

// Start broadcasts payload for durationMs milliseconds, replacing any burst
// already in flight. The replaced burst's remaining time is discarded.
func (a *AdvertiseBurst) Start(payload []byte, durationMs int, nowMs int64) error {
	if err := a.radio.Start(payload, a.intervalMs); err != nil {
		return err
	}
	a.active = true
	a.deadlineMs = nowMs + int64(durationMs)
	a.payload = payload
	return nil
}

// Service stops the broadcast once the deadline has been reached. Idempotent:
// it is a no-op when idle or when the deadline is still ahead.
func (a *AdvertiseBurst) Service(nowMs int64) error {
	if !a.active || nowMs < a.deadlineMs {
		return nil
	}
	if err := a.radio.Stop(); err != nil {
		return err
	}
	a.active = false
	a.payload = nil
	return nil
}

func (a *AdvertiseBurst) Active() bool {
	return a.active
}

// Payload returns the currently broadcasting payload, nil when idle.
func (a *AdvertiseBurst) Payload() []byte {
	return a.payload
}
