package radio

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

const (
	eventBufferSize = 256
	readSliceMs     = 250
	recvBufferBytes = 64 * 1024
)

// UDPRadio implements Broadcaster and Scanner over a UDP multicast group,
// standing in for a short-range radio's advertising channel on host
// platforms. Broadcast sends the payload as a datagram at the interval hint
// until stopped; scan reads the group socket for the window duration and
// emits one ScanResult per datagram. Signal strength is not observable on
// UDP and is reported as 0.
type UDPRadio struct {
	group  *net.UDPAddr
	send   *net.UDPConn
	recv   *net.UDPConn
	events chan Event

	mu       sync.Mutex
	advStop  chan struct{}
	scanning bool
}

func NewUDPRadio(groupAddr string) (*UDPRadio, error) {
	group, err := net.ResolveUDPAddr("udp4", groupAddr)
	if err != nil {
		return nil, err
	}

	recv, err := net.ListenMulticastUDP("udp4", nil, group)
	if err != nil {
		return nil, err
	}
	if err := recv.SetReadBuffer(recvBufferBytes); err != nil {
		log.Printf("Failed to set receive buffer: %v", err)
	}

	send, err := net.DialUDP("udp4", nil, group)
	if err != nil {
		if cerr := recv.Close(); cerr != nil {
			log.Printf("Failed to close receive socket: %v", cerr)
		}
		return nil, err
	}

	return &UDPRadio{
		group:  group,
		send:   send,
		recv:   recv,
		events: make(chan Event, eventBufferSize),
	}, nil
}

// Start begins broadcasting payload every intervalMs milliseconds, replacing
// any broadcast already in flight. The first send happens synchronously so a
// refused transmit surfaces to the caller.
func (r *UDPRadio) Start(payload []byte, intervalMs int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.advStop != nil {
		close(r.advStop)
		r.advStop = nil
	}

	if _, err := r.send.Write(payload); err != nil {
		return fmt.Errorf("broadcast start: %w", err)
	}

	stop := make(chan struct{})
	r.advStop = stop

	data := make([]byte, len(payload))
	copy(data, payload)

	go func() {
		ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := r.send.Write(data); err != nil {
					log.Printf("Broadcast send failed: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the current broadcast. No-op when nothing is in flight.
func (r *UDPRadio) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.advStop != nil {
		close(r.advStop)
		r.advStop = nil
	}
	return nil
}

// Scan opens one scan window of windowMs milliseconds. The interval hints
// have no meaning on UDP and are ignored. Exactly one window may be open at
// a time; the window emits ScanWindowEnded when it expires and never
// auto-repeats.
func (r *UDPRadio) Scan(windowMs, intervalMinMs, intervalMaxMs int) error {
	r.mu.Lock()
	if r.scanning {
		r.mu.Unlock()
		return fmt.Errorf("scan window already open")
	}
	r.scanning = true
	r.mu.Unlock()

	go r.scanWindow(time.Duration(windowMs) * time.Millisecond)
	return nil
}

func (r *UDPRadio) scanWindow(window time.Duration) {
	deadline := time.Now().Add(window)
	buf := make([]byte, recvBufferBytes)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		slice := readSliceMs * time.Millisecond
		if remaining < slice {
			slice = remaining
		}
		if err := r.recv.SetReadDeadline(time.Now().Add(slice)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		n, src, err := r.recv.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			log.Printf("Scan read failed: %v", err)
			break
		}

		raw := make([]byte, n)
		copy(raw, buf[:n])

		// Drop on overflow rather than stall the socket reader.
		select {
		case r.events <- ScanResult{Addr: src.String(), RSSI: 0, Raw: raw}:
		default:
		}
	}

	r.mu.Lock()
	r.scanning = false
	r.mu.Unlock()

	// The window-ended notification must not be lost: the owner re-arms
	// scanning only when it sees this event.
	r.events <- ScanWindowEnded{}
}

func (r *UDPRadio) Events() <-chan Event {
	return r.events
}

// Close releases both sockets. Only used on teardown paths.
func (r *UDPRadio) Close() error {
	if err := r.Stop(); err != nil {
		return err
	}
	if err := r.send.Close(); err != nil {
		return err
	}
	return r.recv.Close()
}
