package protocol

import "github.com/lumo-dev/lumo/internal/errors"

// FrameType is the first byte of every message.
type FrameType uint8

const (
	FrameHello FrameType = 0x00 // session greeting, server -> client
	FrameEvent FrameType = 0x01 // input event, client -> server
	FramePatch FrameType = 0x02 // mutation batch, server -> client
	FramePing  FrameType = 0x03 // liveness probe
	FramePong  FrameType = 0x04 // liveness reply
	FrameError FrameType = 0x05 // fatal session error, server -> client
)

// String returns the string representation of the FrameType.
func (t FrameType) String() string {
	switch t {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FramePatch:
		return "Patch"
	case FramePing:
		return "Ping"
	case FramePong:
		return "Pong"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// MaxFrameSize caps one frame including its type byte (256KB).
const MaxFrameSize = 256 * 1024

// Frame is one wire message.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// Encode serializes the frame to a single message buffer.
func (f *Frame) Encode() []byte {
	buf := make([]byte, 1+len(f.Payload))
	buf[0] = byte(f.Type)
	copy(buf[1:], f.Payload)
	return buf
}

// DecodeFrame splits a message into type and payload. The payload slice
// aliases data.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, errors.New("E600").With("detail", "empty frame")
	}
	if len(data) > MaxFrameSize {
		return nil, errors.New("E601").With("size", len(data))
	}
	t := FrameType(data[0])
	if t > FrameError {
		return nil, errors.New("E600").With("type", int(t))
	}
	return &Frame{Type: t, Payload: data[1:]}, nil
}

// Hello is the session greeting sent after the websocket upgrade.
type Hello struct {
	SessionID   string
	ContainerID string
	Version     uint32
}

// ProtocolVersion is bumped on incompatible wire changes.
const ProtocolVersion = 1

// Encode serializes the greeting into a Hello frame.
func (h *Hello) Encode() []byte {
	e := NewEncoder()
	e.WriteByte(byte(FrameHello))
	e.WriteUint32(h.Version)
	e.WriteString(h.SessionID)
	e.WriteString(h.ContainerID)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeHello parses a Hello frame payload.
func DecodeHello(payload []byte) (*Hello, error) {
	d := NewDecoder(payload)
	var h Hello
	var err error
	if h.Version, err = d.ReadUint32(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if h.ContainerID, err = d.ReadString(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	return &h, nil
}
