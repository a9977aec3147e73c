package dataType

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	// FrameMarker is the fixed version/magic prefix of every wire frame.
	FrameMarker = "M1|"
	// FrameDelimiter separates the frame fields. No field may contain it.
	FrameDelimiter = "|"

	frameTokens = 6 // marker token + five fields

	// MaxAdvNameLen caps the frame text carried in an advertising payload:
	// a 31-byte legacy advertising PDU minus the Flags structure and the
	// Complete Local Name header. A frame with a six-character origin, a
	// six-digit message id, single-digit ttl and a five-character reading
	// fits exactly; anything longer loses payload tail bytes only, since
	// the payload is the last field.
	MaxAdvNameLen = 26
)

// Frame is one mesh message: origin node id, per-origin message id, remaining
// hop budget, single-character type tag and application payload.
type Frame struct {
	Origin    string
	MessageID string
	TTL       int
	Type      string
	Payload   string
}

type DecodeReason int

const (
	DecodeNoMarker DecodeReason = iota
	DecodeBadFieldCount
	DecodeBadTTL
)

// DecodeError reports why a buffer could not be decoded as a frame. The
// caller decides the drop policy; DecodeFrame never panics on garbled input.
type DecodeError struct {
	Reason DecodeReason
}

func (e *DecodeError) Error() string {
	switch e.Reason {
	case DecodeNoMarker:
		return "frame marker not found"
	case DecodeBadFieldCount:
		return "wrong field count"
	case DecodeBadTTL:
		return "ttl is not an integer"
	default:
		return "malformed frame"
	}
}

// EncodeFrame builds the wire text frame. Fields must not contain the
// delimiter character; that precondition is the caller's to keep.
func EncodeFrame(origin, messageID string, ttl int, typ, payload string) string {
	return fmt.Sprintf("%s%s|%s|%d|%s|%s", FrameMarker, origin, messageID, ttl, typ, payload)
}

// DecodeFrame locates the frame marker inside a raw advertising buffer (the
// payload may carry extraneous bytes before and after the frame), cuts the
// text at the first NUL and splits it into the five frame fields.
func DecodeFrame(raw []byte) (*Frame, error) {
	idx := bytes.Index(raw, []byte(FrameMarker))
	if idx == -1 {
		return nil, &DecodeError{Reason: DecodeNoMarker}
	}
	s := string(raw[idx:])
	if nul := strings.IndexByte(s, 0x00); nul != -1 {
		s = s[:nul]
	}

	parts := strings.SplitN(s, FrameDelimiter, frameTokens)
	if len(parts) != frameTokens {
		return nil, &DecodeError{Reason: DecodeBadFieldCount}
	}

	ttl, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, &DecodeError{Reason: DecodeBadTTL}
	}

	return &Frame{
		Origin:    parts[1],
		MessageID: parts[2],
		TTL:       ttl,
		Type:      parts[4],
		Payload:   parts[5],
	}, nil
}

// FrameToAdvName truncates a wire frame so it fits the advertising payload.
func FrameToAdvName(frame string) string {
	if len(frame) > MaxAdvNameLen {
		return frame[:MaxAdvNameLen]
	}
	return frame
}

// AdvPayload wraps a name string into an advertising payload: a Flags
// structure followed by a Complete Local Name structure carrying the name.
func AdvPayload(name string) []byte {
	payload := []byte{0x02, 0x01, 0x06}
	payload = append(payload, byte(len(name)+1), 0x09)
	return append(payload, name...)
}
