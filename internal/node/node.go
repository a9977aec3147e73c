package node

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"mesh_node/internal/config"
	"mesh_node/internal/dataType"
	"mesh_node/internal/radio"
	"mesh_node/internal/sensor"
	"mesh_node/internal/utils"
)

// Delivery is an accepted frame handed to the local application sink.
type Delivery struct {
	Origin    string
	MessageID string
	TTL       int
	Type      string
	Payload   string
	RSSI      int
}

// Sink receives locally delivered frames. Optional; the node always writes
// the RX line to its log regardless.
type Sink interface {
	Deliver(d Delivery)
}

// MeshNode is the one aggregate owning all mutable mesh state: the seen
// list, the burst and injection schedulers and the radio handles. Every
// handler runs on the Run goroutine, so no state here needs locking.
type MeshNode struct {
	cfg      *config.MainConfig
	nodeID   string
	seen     *dataType.SeenList
	burst    *AdvertiseBurst
	injector *InjectionScheduler
	scanner  radio.Scanner
	source   sensor.Source
	sink     Sink
	logx     *utils.LogxManager
	nowMs    func() int64
}

func NewMeshNode(cfg *config.MainConfig, nodeID string, b radio.Broadcaster, s radio.Scanner, src sensor.Source, sink Sink, logx *utils.LogxManager) *MeshNode {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	n := &MeshNode{
		cfg:      cfg,
		nodeID:   nodeID,
		seen:     dataType.NewSeenList(cfg.SeenCapacity),
		burst:    NewAdvertiseBurst(b, cfg.AdvIntervalMs),
		injector: NewInjectionScheduler(cfg.InjectPeriodMs, cfg.InjectJitterMs, rng),
		scanner:  s,
		source:   src,
		sink:     sink,
		logx:     logx,
		nowMs:    func() int64 { return time.Now().UnixMilli() },
	}
	n.injector.Rearm(n.nowMs())
	return n
}

// HandleEvent dispatches one asynchronous scan notification.
func (n *MeshNode) HandleEvent(ev radio.Event) error {
	switch e := ev.(type) {
	case radio.ScanResult:
		return n.handleScanResult(e)
	case radio.ScanWindowEnded:
		// Windows never auto-repeat; re-arm immediately so reception
		// stays effectively continuous.
		return n.startScan()
	default:
		return fmt.Errorf("unhandled radio event %T", ev)
	}
}

func (n *MeshNode) startScan() error {
	return n.scanner.Scan(n.cfg.ScanWindowMs, n.cfg.ScanIntervalMinMs, n.cfg.ScanIntervalMaxMs)
}

// handleScanResult runs the receive/relay decision chain: decode, self-origin
// check, duplicate suppression, local delivery, ttl-gated relay.
func (n *MeshNode) handleScanResult(e radio.ScanResult) error {
	f, err := dataType.DecodeFrame(e.Raw)
	if err != nil {
		// Best-effort medium: malformed input is dropped without
		// surfacing an error. Debug log only.
		n.logx.LogDebug("DROP", fmt.Sprintf("addr=%s err=%v", e.Addr, err))
		return nil
	}

	if f.Origin == n.nodeID {
		return nil
	}

	if n.seen.CheckAndAdd(dataType.SeenKey(f.Origin, f.MessageID)) {
		return nil
	}

	n.logx.LogInfo("RX NEW", fmt.Sprintf("rssi=%d orig=%s ttl=%d type=%s data=%s",
		e.RSSI, f.Origin, f.TTL, f.Type, f.Payload))
	if n.sink != nil {
		n.sink.Deliver(Delivery{
			Origin:    f.Origin,
			MessageID: f.MessageID,
			TTL:       f.TTL,
			Type:      f.Type,
			Payload:   f.Payload,
			RSSI:      e.RSSI,
		})
	}

	if f.TTL <= 0 {
		return nil
	}
	return n.relay(f)
}

// relay re-broadcasts a newly seen frame with the hop budget decremented.
func (n *MeshNode) relay(f *dataType.Frame) error {
	fwd := dataType.EncodeFrame(f.Origin, f.MessageID, f.TTL-1, f.Type, f.Payload)
	if err := n.startBurst(fwd); err != nil {
		return err
	}
	n.logx.LogInfo("FWD", fmt.Sprintf("ttl=%d frame=%s", f.TTL-1, fwd))
	return nil
}

func (n *MeshNode) startBurst(frame string) error {
	payload := dataType.AdvPayload(dataType.FrameToAdvName(frame))
	return n.burst.Start(payload, n.cfg.AdvBurstMs, n.nowMs())
}

// InjectOwn synthesizes a self-originated frame from a fresh sensor reading
// and starts a broadcast burst for it, then re-arms the injection timer.
func (n *MeshNode) InjectOwn() error {
	now := n.nowMs()
	payload := strconv.FormatFloat(n.source.Read(), 'f', 2, 64)
	msgID := n.newMessageID(now)

	// Recorded before broadcasting so an overheard echo of this frame is
	// recognized as already seen.
	n.seen.CheckAndAdd(dataType.SeenKey(n.nodeID, msgID))

	frame := dataType.EncodeFrame(n.nodeID, msgID, n.cfg.DefaultTTL, n.cfg.FrameType, payload)
	if err := n.startBurst(frame); err != nil {
		return err
	}
	n.logx.LogInfo("INJECT", frame)

	n.injector.Rearm(now)
	return nil
}

// newMessageID derives a fixed-width decimal id from the millisecond clock.
// Six digits keeps a full frame inside the advertising name budget; ids
// repeat every thousand seconds and collisions across rapid restarts are
// possible and tolerated. The wire field stays an opaque decimal string.
func (n *MeshNode) newMessageID(nowMs int64) string {
	return fmt.Sprintf("%06d", nowMs%1_000_000)
}

// Service drives the time-based work of one loop iteration: burst expiry
// first, then the injection timer.
func (n *MeshNode) Service() error {
	now := n.nowMs()
	if err := n.burst.Service(now); err != nil {
		return err
	}
	if n.injector.ShouldFire(now) {
		return n.InjectOwn()
	}
	return nil
}

// Run opens the first scan window and loops until stop is closed. All mesh
// state is touched only from this goroutine: scan notifications are drained
// from the driver's event channel and time-based work runs on the poll
// ticker, so waiting is always poll-and-retry, never blocking on the radio.
func (n *MeshNode) Run(stop <-chan struct{}) error {
	if err := n.startScan(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(n.cfg.PollIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-n.scanner.Events():
			if err := n.HandleEvent(ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := n.Service(); err != nil {
				return err
			}
		case <-stop:
			return nil
		}
	}
}

// NodeID returns the stable identifier this node stamps as frame origin.
func (n *MeshNode) NodeID() string {
	return n.nodeID
}
