package protocol

import "github.com/lumo-dev/lumo/internal/errors"

// InputEvent is a client-side input delivered to the engine: the event
// kind, the target node, and the input payload for value-bearing kinds.
// Seq increments per client so the server can log dropped or reordered
// events.
type InputEvent struct {
	Seq    uint32
	Kind   string
	Target string // target node identifier
	Value  string
}

// Encode serializes the event into an Event frame.
func (ev *InputEvent) Encode() []byte {
	e := NewEncoder()
	e.WriteByte(byte(FrameEvent))
	e.WriteUint32(ev.Seq)
	e.WriteString(ev.Kind)
	e.WriteString(ev.Target)
	e.WriteString(ev.Value)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeEvent parses an Event frame payload.
func DecodeEvent(payload []byte) (*InputEvent, error) {
	d := NewDecoder(payload)
	var ev InputEvent
	var err error
	if ev.Seq, err = d.ReadUint32(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if ev.Kind, err = d.ReadString(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if ev.Target, err = d.ReadString(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, errors.FromError(err, "E600")
	}
	if ev.Kind == "" || ev.Target == "" {
		return nil, errors.New("E600").With("detail", "event missing kind or target")
	}
	return &ev, nil
}

// EncodeError serializes a fatal session error into an Error frame.
func EncodeError(code, message string) []byte {
	e := NewEncoder()
	e.WriteByte(byte(FrameError))
	e.WriteString(code)
	e.WriteString(message)
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

// DecodeError parses an Error frame payload into code and message.
func DecodeError(payload []byte) (code, message string, err error) {
	d := NewDecoder(payload)
	if code, err = d.ReadString(); err != nil {
		return "", "", errors.FromError(err, "E600")
	}
	if message, err = d.ReadString(); err != nil {
		return "", "", errors.FromError(err, "E600")
	}
	return code, message, nil
}
