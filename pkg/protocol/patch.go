package protocol

import (
	"github.com/lumo-dev/lumo/internal/errors"
	"github.com/lumo-dev/lumo/pkg/dom"
)

// Patch is the client-side view of one document mutation. Node
// references are stable node identifiers; structural fields are filled
// per operation.
type Patch struct {
	Op     dom.MutationOp
	NID    string       // node created/mutated/moved/removed
	Parent string       // parent for child operations
	Ref    string       // insert reference / replaced child
	Key    string       // attribute or style property
	Value  string       // attribute/style/text payload
	Node   dom.NodeKind // created node's kind, OpCreateNode only
	Tag    string       // created element's tag, OpCreateNode only
}

// EncodePatches serializes a mutation batch into a Patch frame.
func EncodePatches(muts []dom.Mutation) []byte {
	e := NewEncoder()
	e.WriteByte(byte(FramePatch))
	e.WriteUvarint(uint64(len(muts)))
	for i := range muts {
		encodeMutation(e, &muts[i])
	}
	out := make([]byte, e.Len())
	copy(out, e.Bytes())
	return out
}

func encodeMutation(e *Encoder, m *dom.Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteString(nid(m.Node))

	switch m.Op {
	case dom.OpCreateNode:
		e.WriteByte(byte(m.Node.Kind()))
		if m.Node.Kind() == dom.ElementNode {
			e.WriteString(m.Node.Tag())
		} else {
			e.WriteString(m.Node.Text())
		}
	case dom.OpSetText:
		e.WriteString(m.Value)
	case dom.OpSetAttr, dom.OpSetStyle:
		e.WriteString(m.Key)
		e.WriteString(m.Value)
	case dom.OpRemoveAttr, dom.OpRemoveStyle:
		e.WriteString(m.Key)
	case dom.OpAppendChild, dom.OpRemoveChild:
		e.WriteString(nid(m.Parent))
	case dom.OpInsertBefore, dom.OpReplaceChild:
		e.WriteString(nid(m.Parent))
		e.WriteString(nid(m.Ref))
	case dom.OpClearContainer:
		// Node reference alone suffices.
	}
}

// DecodePatches parses a Patch frame payload into patches, in the order
// they must be applied.
func DecodePatches(payload []byte) ([]Patch, error) {
	d := NewDecoder(payload)
	count, err := d.ReadCount()
	if err != nil {
		return nil, errors.FromError(err, "E600")
	}

	patches := make([]Patch, 0, count)
	for i := 0; i < count; i++ {
		p, err := decodeMutation(d)
		if err != nil {
			return nil, errors.FromError(err, "E600").With("index", i)
		}
		patches = append(patches, p)
	}
	if !d.EOF() {
		return nil, errors.New("E600").With("detail", "trailing bytes after patch batch")
	}
	return patches, nil
}

func decodeMutation(d *Decoder) (Patch, error) {
	var p Patch

	op, err := d.ReadByte()
	if err != nil {
		return p, err
	}
	if op < byte(dom.OpCreateNode) || op > byte(dom.OpClearContainer) {
		return p, errors.New("E600").With("op", int(op))
	}
	p.Op = dom.MutationOp(op)

	if p.NID, err = d.ReadString(); err != nil {
		return p, err
	}

	switch p.Op {
	case dom.OpCreateNode:
		kind, err := d.ReadByte()
		if err != nil {
			return p, err
		}
		p.Node = dom.NodeKind(kind)
		payload, err := d.ReadString()
		if err != nil {
			return p, err
		}
		if p.Node == dom.ElementNode {
			p.Tag = payload
		} else {
			p.Value = payload
		}
	case dom.OpSetText:
		p.Value, err = d.ReadString()
	case dom.OpSetAttr, dom.OpSetStyle:
		if p.Key, err = d.ReadString(); err != nil {
			return p, err
		}
		p.Value, err = d.ReadString()
	case dom.OpRemoveAttr, dom.OpRemoveStyle:
		p.Key, err = d.ReadString()
	case dom.OpAppendChild, dom.OpRemoveChild:
		p.Parent, err = d.ReadString()
	case dom.OpInsertBefore, dom.OpReplaceChild:
		if p.Parent, err = d.ReadString(); err != nil {
			return p, err
		}
		p.Ref, err = d.ReadString()
	}
	return p, err
}

func nid(n *dom.Node) string {
	if n == nil {
		return ""
	}
	return n.NID()
}
