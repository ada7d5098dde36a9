package protocol

import (
	"testing"

	"github.com/lumo-dev/lumo/internal/errors"
	"github.com/lumo-dev/lumo/pkg/dom"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1<<14 - 1, 1 << 14, 1 << 32, 1<<63 + 5}

	e := NewEncoder()
	for _, v := range values {
		e.WriteUvarint(v)
	}

	d := NewDecoder(e.Bytes())
	for _, want := range values {
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint: %v", err)
		}
		if got != want {
			t.Errorf("ReadUvarint = %d, want %d", got, want)
		}
	}
	if !d.EOF() {
		t.Errorf("Remaining = %d, want 0", d.Remaining())
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x7F)
	e.WriteString("héllo")
	e.WriteString("")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint32(0xDEADBEEF)

	d := NewDecoder(e.Bytes())
	if b, _ := d.ReadByte(); b != 0x7F {
		t.Errorf("ReadByte = %#x, want 0x7f", b)
	}
	if s, _ := d.ReadString(); s != "héllo" {
		t.Errorf("ReadString = %q, want héllo", s)
	}
	if s, _ := d.ReadString(); s != "" {
		t.Errorf("ReadString = %q, want empty", s)
	}
	if b, _ := d.ReadBool(); !b {
		t.Error("first bool should be true")
	}
	if b, _ := d.ReadBool(); b {
		t.Error("second bool should be false")
	}
	if v, _ := d.ReadUint32(); v != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %#x, want 0xdeadbeef", v)
	}
}

func TestDecoderTruncation(t *testing.T) {
	if _, err := NewDecoder(nil).ReadByte(); err == nil {
		t.Error("ReadByte on empty input must fail")
	}
	if _, err := NewDecoder([]byte{0x05, 'a', 'b'}).ReadString(); err == nil {
		t.Error("ReadString with a short payload must fail")
	}
	if _, err := NewDecoder([]byte{0x01, 0x02}).ReadUint32(); err == nil {
		t.Error("ReadUint32 with under four bytes must fail")
	}
	if _, err := NewDecoder([]byte{0x80, 0x80}).ReadUvarint(); err == nil {
		t.Error("truncated varint must fail")
	}
}

func TestVarintOverflowRejected(t *testing.T) {
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0xFF
	}
	_, err := NewDecoder(data).ReadUvarint()
	if e, ok := err.(*errors.Error); !ok || e.Code != "E600" {
		t.Errorf("err = %v, want E600", err)
	}
}

func TestReadCountTooLarge(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	// Pad so the count is not rejected as exceeding the remaining bytes.
	for i := 0; i < MaxCollectionCount+2; i++ {
		e.WriteByte(0)
	}

	_, err := NewDecoder(e.Bytes()).ReadCount()
	if e, ok := err.(*errors.Error); !ok || e.Code != "E601" {
		t.Errorf("err = %v, want E601", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len = %d after Reset, want 0", e.Len())
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f := &Frame{Type: FramePatch, Payload: []byte{1, 2, 3}}
	got, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.Type != FramePatch || len(got.Payload) != 3 {
		t.Errorf("frame = %v/%d bytes, want Patch/3", got.Type, len(got.Payload))
	}
}

func TestDecodeFrameRejections(t *testing.T) {
	if _, err := DecodeFrame(nil); err == nil {
		t.Error("empty frame must be rejected")
	}
	if _, err := DecodeFrame([]byte{0xFF}); err == nil {
		t.Error("unknown frame type must be rejected")
	}
	huge := make([]byte, MaxFrameSize+1)
	_, err := DecodeFrame(huge)
	if e, ok := err.(*errors.Error); !ok || e.Code != "E601" {
		t.Errorf("oversize err = %v, want E601", err)
	}
}

func TestHelloRoundTrip(t *testing.T) {
	h := &Hello{SessionID: "abcd1234", ContainerID: "app", Version: ProtocolVersion}
	f, err := DecodeFrame(h.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Type != FrameHello {
		t.Fatalf("Type = %v, want Hello", f.Type)
	}
	got, err := DecodeHello(f.Payload)
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if *got != *h {
		t.Errorf("hello = %+v, want %+v", got, h)
	}
}

func TestEventRoundTrip(t *testing.T) {
	ev := &InputEvent{Seq: 42, Kind: "click", Target: "n7", Value: "x"}
	f, err := DecodeFrame(ev.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Type != FrameEvent {
		t.Fatalf("Type = %v, want Event", f.Type)
	}
	got, err := DecodeEvent(f.Payload)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if *got != *ev {
		t.Errorf("event = %+v, want %+v", got, ev)
	}
}

func TestDecodeEventRequiresKindAndTarget(t *testing.T) {
	ev := &InputEvent{Seq: 1, Kind: "", Target: "n1"}
	_, err := DecodeEvent(ev.Encode()[1:])
	if e, ok := err.(*errors.Error); !ok || e.Code != "E600" {
		t.Errorf("err = %v, want E600 for missing kind", err)
	}
}

func TestErrorFrameRoundTrip(t *testing.T) {
	data := EncodeError("E600", "malformed frame")
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	code, msg, err := DecodeError(f.Payload)
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if code != "E600" || msg != "malformed frame" {
		t.Errorf("error frame = %q/%q, want E600/malformed frame", code, msg)
	}
}

// mutationScript drives a document through every mutation op and returns
// the recorded batch.
func mutationScript() []dom.Mutation {
	d := dom.NewDocument()
	rec := &dom.Recorder{}
	d.Observe(rec.Observe)

	container := d.CreateNode("div", false)
	parent := d.CreateNode("ul", false)
	a := d.CreateNode("li", false)
	txt := d.CreateNode("hi", true)

	d.SetAttribute(parent, "class", "list")
	d.SetStyle(parent, "color", "red")
	d.AppendChild(container, parent)
	d.AppendChild(parent, a)
	d.AppendChild(a, txt)
	d.SetText(txt, "bye")

	b := d.CreateNode("li", false)
	d.InsertBefore(parent, b, a)
	c := d.CreateNode("li", false)
	d.ReplaceChild(parent, c, b)
	d.RemoveAttribute(parent, "class")
	d.SetStyle(parent, "color", "")
	d.RemoveChild(parent, c)
	d.ClearContainer(container)

	return rec.Mutations
}

func TestPatchRoundTripAllOps(t *testing.T) {
	muts := mutationScript()

	f, err := DecodeFrame(EncodePatches(muts))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Type != FramePatch {
		t.Fatalf("Type = %v, want Patch", f.Type)
	}
	patches, err := DecodePatches(f.Payload)
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if len(patches) != len(muts) {
		t.Fatalf("decoded %d patches, want %d", len(patches), len(muts))
	}

	for i, p := range patches {
		m := muts[i]
		if p.Op != m.Op {
			t.Errorf("patch %d op = %v, want %v", i, p.Op, m.Op)
		}
		if m.Node != nil && p.NID != m.Node.NID() {
			t.Errorf("patch %d nid = %q, want %q", i, p.NID, m.Node.NID())
		}
		switch m.Op {
		case dom.OpCreateNode:
			if p.Node != m.Node.Kind() {
				t.Errorf("patch %d kind = %v, want %v", i, p.Node, m.Node.Kind())
			}
			if m.Node.Kind() == dom.ElementNode && p.Tag != m.Node.Tag() {
				t.Errorf("patch %d tag = %q, want %q", i, p.Tag, m.Node.Tag())
			}
		case dom.OpSetText:
			if p.Value != m.Value {
				t.Errorf("patch %d value = %q, want %q", i, p.Value, m.Value)
			}
		case dom.OpSetAttr, dom.OpSetStyle:
			if p.Key != m.Key || p.Value != m.Value {
				t.Errorf("patch %d = %q=%q, want %q=%q", i, p.Key, p.Value, m.Key, m.Value)
			}
		case dom.OpRemoveAttr, dom.OpRemoveStyle:
			if p.Key != m.Key {
				t.Errorf("patch %d key = %q, want %q", i, p.Key, m.Key)
			}
		case dom.OpAppendChild, dom.OpRemoveChild:
			if p.Parent != m.Parent.NID() {
				t.Errorf("patch %d parent = %q, want %q", i, p.Parent, m.Parent.NID())
			}
		case dom.OpInsertBefore, dom.OpReplaceChild:
			if p.Parent != m.Parent.NID() || p.Ref != m.Ref.NID() {
				t.Errorf("patch %d parent/ref = %q/%q, want %q/%q",
					i, p.Parent, p.Ref, m.Parent.NID(), m.Ref.NID())
			}
		}
	}
}

func TestDecodePatchesRejectsTrailingBytes(t *testing.T) {
	payload := EncodePatches(nil)[1:]
	payload = append(payload, 0xAB)

	_, err := DecodePatches(payload)
	if e, ok := err.(*errors.Error); !ok || e.Code != "E600" {
		t.Errorf("err = %v, want E600", err)
	}
}

func TestDecodePatchesRejectsUnknownOp(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1)
	e.WriteByte(0x7F) // not a mutation op
	e.WriteString("n1")

	_, err := DecodePatches(e.Bytes())
	if err == nil {
		t.Error("unknown op must be rejected")
	}
}
