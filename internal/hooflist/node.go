package hooflist

import "github.com/GeekHorse/Trot-sub001/internal/program"

// nodeKind tags what a node's run holds. Matches NODE_KIND_INT /
// NODE_KIND_LIST in the original C source; there is no Go analogue of
// NODE_KIND_HEAD_OR_TAIL because this implementation represents the
// empty list as a nil node chain instead of allocating sentinel nodes
// (Go doesn't need a sentinel to avoid null-pointer special-casing the
// way the original C linked list does).
type nodeKind uint8

const (
	nodeKindInt nodeKind = iota + 1
	nodeKindList
)

// node is one chunk in a list's doubly linked node chain (spec §3,
// Node). Exactly one of ints/refs is used, per its kind. Invariant N1:
// len(ints)+len(refs) (whichever is populated) is always >= 1 while the
// node is linked into a list; a node that would drop to 0 is unlinked
// and discarded instead (see removeAt).
type node struct {
	kind nodeKind
	ints []Int
	refs []*Ref

	prev, next *node
}

func newIntNode(cap int) *node {
	return &node{kind: nodeKindInt, ints: make([]Int, 0, cap)}
}

func newListNode(cap int) *node {
	return &node{kind: nodeKindList, refs: make([]*Ref, 0, cap)}
}

func (n *node) count() int {
	if n.kind == nodeKindInt {
		return len(n.ints)
	}
	return len(n.refs)
}

func (n *node) full(cap int) bool {
	return n.count() >= cap
}

// splitAt divides n at offset (0 < offset < n.count()): a new node of the
// same kind is created carrying the suffix starting at offset, linked in
// immediately after n. This is the single mechanism (spec §4.B "Split")
// that lets insert/remove always operate at a node boundary. The suffix
// node is itself a fresh allocation under the same accounting rules as
// any other node (spec §4.A: "every allocation is charged ... and
// checked against a limit before succeeding") — prog.Alloc is charged
// before n is touched, so a split that would exceed the memory limit
// fails without mutating n.
func (n *node) splitAt(prog *program.Program, op string, offset, cap int) (*node, error) {
	if err := prog.Alloc(op, nodeBytes(cap)); err != nil {
		return nil, err
	}
	var suffix *node
	if n.kind == nodeKindInt {
		suffix = newIntNode(cap)
		suffix.ints = append(suffix.ints, n.ints[offset:]...)
		n.ints = n.ints[:offset]
	} else {
		suffix = newListNode(cap)
		suffix.refs = append(suffix.refs, n.refs[offset:]...)
		n.refs = n.refs[:offset]
	}
	suffix.prev = n
	suffix.next = n.next
	if n.next != nil {
		n.next.prev = suffix
	}
	n.next = suffix
	return suffix, nil
}
