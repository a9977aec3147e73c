package radio

// Broadcaster is the connectionless advertising primitive. It is exclusively
// owned by the node's burst scheduler: starting a new broadcast implicitly
// replaces whatever was in flight.
type Broadcaster interface {
	Start(payload []byte, intervalMs int) error
	Stop() error
}

// Scanner is the time-boxed receive primitive. A window does not auto-repeat;
// the owner must call Start again after every ScanWindowEnded notification.
type Scanner interface {
	Scan(windowMs, intervalMinMs, intervalMaxMs int) error
	Events() <-chan Event
}

// Event is the sealed variant of asynchronous scan notifications. Handlers
// dispatch on the concrete type so a new event kind cannot fall through
// unnoticed.
type Event interface {
	isEvent()
}

// ScanResult carries one observed advertisement: source address, signal
// strength and the raw advertising bytes.
type ScanResult struct {
	Addr string
	RSSI int
	Raw  []byte
}

// ScanWindowEnded signals that the current scan window expired.
type ScanWindowEnded struct{}

func (ScanResult) isEvent()      {}
func (ScanWindowEnded) isEvent() {}
