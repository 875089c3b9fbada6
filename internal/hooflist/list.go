package hooflist

import (
	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/program"
)

// List is the main data structure in Trot (spec §3, §4.C): an ordered,
// chunked sequence of children plus type/tag metadata and a back-pointer
// set used by the collector.
type List struct {
	prog *program.Program

	count int64
	typ   int32
	tag   int32

	head, tail *node // nil, nil when empty

	back []*Ref // every Ref that targets this list (spec §4.D H1)
}

// newBareList allocates a List header charged to p but installs no
// handle at all. Used internally by Enlist, which needs a list object
// that gets exactly one inside handle installed atomically by its
// caller, and by NewList, which installs exactly one root handle.
func newBareList(op string, p *program.Program) (*List, error) {
	if err := p.Alloc(op, listHeaderBytes); err != nil {
		return nil, err
	}
	return &List{prog: p}, nil
}

// NewList implements the `init` operation (spec §4.F): creates a new
// empty list and returns it along with a fresh root handle.
func NewList(p *program.Program) (*List, *Ref, error) {
	const op = "Init"
	if p == nil {
		return nil, nil, errs.NewPrecondition(op, "nil program")
	}
	l, err := newBareList(op, p)
	if err != nil {
		return nil, nil, err
	}
	h, err := newRootHandle(op, l)
	if err != nil {
		p.Free(listHeaderBytes)
		return nil, nil, err
	}
	return l, h, nil
}

// Count returns the number of children (get_count, O(1)).
func (l *List) Count() int64 { return l.count }

// Type returns the list's user type (get_type, O(1)).
func (l *List) Type() int32 { return l.typ }

// SetType sets the list's user type, bounded to [TYPE_MIN, TYPE_MAX].
func (l *List) SetType(t int32) error {
	const op = "SetType"
	if err := checkType(op, l.prog, t); err != nil {
		return err
	}
	l.typ = t
	return nil
}

// Tag returns the list's user tag (get_tag, O(1), unbounded).
func (l *List) Tag() int32 { return l.tag }

// SetTag sets the list's user tag (set_tag, O(1), unbounded).
func (l *List) SetTag(t int32) { l.tag = t }

// Program returns the Program this list is owned by.
func (l *List) Program() *program.Program { return l.prog }

// locate finds the (node, offset-within-node) pair for the zero-based
// logical position pos (spec §4.B "Split"/"Indexing").
func (l *List) locate(pos int64) (*node, int) {
	n := l.head
	for n != nil {
		c := int64(n.count())
		if pos < c {
			return n, int(pos)
		}
		pos -= c
		n = n.next
	}
	return nil, 0
}

func (l *List) nodeSize() int { return l.prog.NodeSize() }

// splitAtBoundary ensures position pos (zero-based, 0..count) is a node
// boundary, splitting a node if necessary, and returns the node
// immediately *before* the boundary (nil if the boundary is at the very
// start) and the node immediately *after* (nil if at the very end). When a
// split is actually needed this charges a fresh node allocation to prog
// (spec §4.A) and can fail with *mem-limit*, leaving l untouched.
func (l *List) splitAtBoundary(op string, pos int64) (before, after *node, err error) {
	if pos == 0 {
		return nil, l.head, nil
	}
	if pos == l.count {
		return l.tail, nil, nil
	}
	n, offset := l.locate(pos)
	if offset == 0 {
		return n.prev, n, nil
	}
	suffix, err := n.splitAt(l.prog, op, offset, l.nodeSize())
	if err != nil {
		return nil, nil, err
	}
	if l.tail == n {
		l.tail = suffix
	}
	return n, suffix, nil
}

func (l *List) linkAfter(anchor, fresh *node) {
	if anchor == nil {
		fresh.prev = nil
		fresh.next = l.head
		if l.head != nil {
			l.head.prev = fresh
		}
		l.head = fresh
		if l.tail == nil {
			l.tail = fresh
		}
		return
	}
	fresh.prev = anchor
	fresh.next = anchor.next
	if anchor.next != nil {
		anchor.next.prev = fresh
	}
	anchor.next = fresh
	if l.tail == anchor {
		l.tail = fresh
	}
}

func (l *List) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// insertIntAt inserts value at zero-based logical position pos, following
// the insert policy of spec §4.B: extend a matching-kind neighbour with
// room, else allocate a fresh node.
func (l *List) insertIntAt(op string, pos int64, value Int) error {
	before, after, err := l.splitAtBoundary(op, pos)
	if err != nil {
		return err
	}
	size := l.nodeSize()
	switch {
	case before != nil && before.kind == nodeKindInt && !before.full(size):
		before.ints = append(before.ints, value)
	case after != nil && after.kind == nodeKindInt && !after.full(size):
		after.ints = append([]Int{value}, after.ints...)
	default:
		if err := l.prog.Alloc(op, nodeBytes(size)); err != nil {
			return err
		}
		fresh := newIntNode(size)
		fresh.ints = append(fresh.ints, value)
		l.linkAfter(before, fresh)
	}
	l.count++
	return nil
}

func (l *List) insertRefAt(op string, pos int64, h *Ref) error {
	before, after, err := l.splitAtBoundary(op, pos)
	if err != nil {
		return err
	}
	size := l.nodeSize()
	switch {
	case before != nil && before.kind == nodeKindList && !before.full(size):
		before.refs = append(before.refs, h)
	case after != nil && after.kind == nodeKindList && !after.full(size):
		after.refs = append([]*Ref{h}, after.refs...)
	default:
		if err := l.prog.Alloc(op, nodeBytes(size)); err != nil {
			return err
		}
		fresh := newListNode(size)
		fresh.refs = append(fresh.refs, h)
		l.linkAfter(before, fresh)
	}
	l.count++
	return nil
}

// removeAt removes the element at zero-based logical position pos,
// unlinking and freeing the owning node if it becomes empty (spec §4.B
// "Remove policy"). Returns the node kind and, for list-kind slots, the
// removed handle (caller is responsible for deregistering/freeing it).
func (l *List) removeAt(pos int64) (Kind, Int, *Ref) {
	n, offset := l.locate(pos)
	l.count--
	if n.kind == nodeKindInt {
		v := n.ints[offset]
		n.ints = append(n.ints[:offset], n.ints[offset+1:]...)
		if len(n.ints) == 0 {
			l.unlink(n)
			// Every node is charged nodeBytes(NodeSize) at creation and on
			// every split (node.splitAt), regardless of how full it is or
			// how its backing slice has been reallocated since (e.g. the
			// prepend branches in insertIntAt/insertRefAt); free must match
			// that fixed size, not the slice's live cap (spec §4.A: free
			// releases "the exact size passed at alloc time").
			l.prog.Free(nodeBytes(l.nodeSize()))
		}
		return KindInt, v, nil
	}
	h := n.refs[offset]
	n.refs = append(n.refs[:offset], n.refs[offset+1:]...)
	if len(n.refs) == 0 {
		l.unlink(n)
		l.prog.Free(nodeBytes(l.nodeSize()))
	}
	return KindList, 0, h
}

// kindAt and friends read without mutating.
func (l *List) kindAt(pos int64) Kind {
	n, _ := l.locate(pos)
	if n.kind == nodeKindInt {
		return KindInt
	}
	return KindList
}

func (l *List) intAt(pos int64) Int {
	n, offset := l.locate(pos)
	return n.ints[offset]
}

func (l *List) refAt(pos int64) *Ref {
	n, offset := l.locate(pos)
	return n.refs[offset]
}
