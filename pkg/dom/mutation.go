package dom

// MutationOp is the type of document mutation.
type MutationOp uint8

const (
	OpCreateNode     MutationOp = 0x01 // node created (detached)
	OpSetText        MutationOp = 0x02 // text payload updated
	OpSetAttr        MutationOp = 0x03 // attribute set/updated
	OpRemoveAttr     MutationOp = 0x04 // attribute removed
	OpSetStyle       MutationOp = 0x05 // style property set
	OpRemoveStyle    MutationOp = 0x06 // style property removed
	OpAppendChild    MutationOp = 0x07 // child appended
	OpInsertBefore   MutationOp = 0x08 // child inserted before reference
	OpReplaceChild   MutationOp = 0x09 // child replaced
	OpRemoveChild    MutationOp = 0x0A // child removed
	OpClearContainer MutationOp = 0x0B // container content cleared
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpCreateNode:
		return "CreateNode"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpReplaceChild:
		return "ReplaceChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpClearContainer:
		return "ClearContainer"
	default:
		return "Unknown"
	}
}

// Mutation describes a single document change.
type Mutation struct {
	Op     MutationOp
	Node   *Node  // the node created/mutated/inserted/removed
	Parent *Node  // parent for child operations
	Ref    *Node  // InsertBefore reference or ReplaceChild old child
	Key    string // attribute/style key
	Value  string // new attribute/style/text value
}

// Observer receives document mutations in the order they are applied.
type Observer func(Mutation)

// Recorder is an Observer that accumulates mutations, used by tests and
// diagnostics to assert on exact mutation sequences.
type Recorder struct {
	Mutations []Mutation
}

// Observe appends the mutation to the recorder.
func (r *Recorder) Observe(m Mutation) {
	r.Mutations = append(r.Mutations, m)
}

// Count returns the number of recorded mutations with the given op.
func (r *Recorder) Count(op MutationOp) int {
	n := 0
	for _, m := range r.Mutations {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Reset clears the recorded mutations.
func (r *Recorder) Reset() {
	r.Mutations = r.Mutations[:0]
}
