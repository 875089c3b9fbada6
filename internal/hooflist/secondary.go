package hooflist

import "github.com/GeekHorse/Trot-sub001/internal/errs"

// normalizeSpan resolves a user-facing (start, end) pair against a list of
// n children, per spec §4.F "spans": both ends go through the P4 index
// duality independently, then are swapped into ascending order if given
// backwards. Returns zero-based, inclusive bounds.
func normalizeSpan(op string, n, start, end int64) (int64, int64, error) {
	s, err := resolveIndex(op, n, start)
	if err != nil {
		return 0, 0, err
	}
	e, err := resolveIndex(op, n, end)
	if err != nil {
		return 0, 0, err
	}
	if s > e {
		s, e = e, s
	}
	return s, e, nil
}

// copyRange builds a new list holding a value-copy of positions s..e
// (zero-based, inclusive; e < s copies nothing) of l: integers by value,
// reference children by twin. Type and tag are copied from l regardless
// of range. The new list is reclaimed via its own root handle if any step
// fails partway, so a caller never has to unwind a partially built copy
// by hand.
func (l *List) copyRange(op string, s, e int64) (*List, *Ref, error) {
	dst, err := newBareList(op, l.prog)
	if err != nil {
		return nil, nil, err
	}
	root, err := newRootHandle(op, dst)
	if err != nil {
		l.prog.Free(listHeaderBytes)
		return nil, nil, err
	}
	dst.typ = l.typ
	dst.tag = l.tag

	for pos := s; pos <= e; pos++ {
		if l.kindAt(pos) == KindInt {
			if err := dst.insertIntAt(op, dst.count, l.intAt(pos)); err != nil {
				Drop(root)
				return nil, nil, err
			}
			continue
		}
		child := l.refAt(pos).target
		h, err := newInsideHandle(op, dst, child)
		if err != nil {
			Drop(root)
			return nil, nil, err
		}
		if err := dst.insertRefAt(op, dst.count, h); err != nil {
			removeBackPointer(child, h)
			dst.prog.Free(handleBytes)
			Drop(root)
			return nil, nil, err
		}
	}
	return dst, root, nil
}

// Copy implements spec §4.G `copy`: a full-range copySpan. An empty
// source copies type and tag but produces no children — copyRange(0, -1)
// naturally does this, since its loop never executes.
func (l *List) Copy() (*List, *Ref, error) {
	return l.copyRange("Copy", 0, l.count-1)
}

// CopySpan implements spec §4.G `copy_span`.
func (l *List) CopySpan(start, end int64) (*List, *Ref, error) {
	const op = "CopySpan"
	s, e, err := normalizeSpan(op, l.count, start, end)
	if err != nil {
		return nil, nil, err
	}
	return l.copyRange(op, s, e)
}

// extractRange cuts the contiguous run of nodes covering zero-based
// positions s..e out of l's chain and returns its head and tail,
// unlinked from l and from each other's former neighbours. The two
// boundary splits it performs may each need a fresh node allocation
// (node.splitAt); if either fails, l's logical content and count are
// still untouched (only chunking may have changed), so it is safe to
// simply return the error.
func (l *List) extractRange(op string, s, e int64) (*node, *node, int64, error) {
	_, segStart, err := l.splitAtBoundary(op, s)
	if err != nil {
		return nil, nil, 0, err
	}
	segEnd, _, err := l.splitAtBoundary(op, e+1)
	if err != nil {
		return nil, nil, 0, err
	}

	before := segStart.prev
	after := segEnd.next
	if before != nil {
		before.next = after
	} else {
		l.head = after
	}
	if after != nil {
		after.prev = before
	} else {
		l.tail = before
	}
	segStart.prev = nil
	segEnd.next = nil

	cnt := e - s + 1
	l.count -= cnt
	return segStart, segEnd, cnt, nil
}

// reinsertSegment is extractRange's inverse: splices a previously
// extracted chain back into l so that it once again starts at zero-based
// logical position pos. Used to roll back an Enlist that fails after the
// span has already been cut loose. pos is always exactly the boundary
// extractRange itself cut at, so the lookup below can never need to split
// a node (and therefore cannot fail on the memory limit); the error is
// discarded accordingly.
func (l *List) reinsertSegment(pos int64, segStart, segEnd *node, cnt int64) {
	before, after, _ := l.splitAtBoundary("Enlist", pos)
	if before != nil {
		before.next = segStart
	} else {
		l.head = segStart
	}
	segStart.prev = before
	if after != nil {
		after.prev = segEnd
	} else {
		l.tail = segEnd
	}
	segEnd.next = after
	l.count += cnt
}

// RemoveSpan implements spec §4.G `remove_span`: the sub-range is cut out
// and discarded; any reference children within it are deregistered from
// their targets and the collector is run for each.
func (l *List) RemoveSpan(start, end int64) error {
	const op = "RemoveSpan"
	s, e, err := normalizeSpan(op, l.count, start, end)
	if err != nil {
		return err
	}
	segStart, _, _, err := l.extractRange(op, s, e)
	if err != nil {
		return err
	}
	touched := freeNodeChain(l.prog, segStart)
	for _, t := range touched {
		collect(t)
	}
	return nil
}

func reparentNodes(head *node, to *List) {
	for n := head; n != nil; n = n.next {
		if n.kind == nodeKindList {
			for _, h := range n.refs {
				h.parent = to
			}
		}
	}
}

// Enlist implements spec §4.G `enlist`: the sub-range s..e is lifted out
// of l and wrapped in a brand new inner list, which is then installed as
// a single child of l at the range's former position. Reference children
// in the range move with their nodes — their back-pointers are
// re-parented in place rather than twinned, so enlisting is O(1) in
// nodes, not O(n) in children.
//
// Both allocations (the inner list's header and the handle that will
// seat it inside l) happen before l's node chain is touched, so the only
// mutations that can still fail afterward (extractRange's boundary
// splits, or insertRefAt needing a fresh node) are trivially reversible:
// the former leaves l's children and count unchanged (at most its
// chunking differs), the latter is undone with reinsertSegment.
func (l *List) Enlist(start, end int64) error {
	const op = "Enlist"
	s, e, err := normalizeSpan(op, l.count, start, end)
	if err != nil {
		return err
	}

	inner, err := newBareList(op, l.prog)
	if err != nil {
		return err
	}
	h, err := newInsideHandle(op, l, inner)
	if err != nil {
		l.prog.Free(listHeaderBytes)
		return err
	}

	segStart, segEnd, cnt, err := l.extractRange(op, s, e)
	if err != nil {
		removeBackPointer(inner, h)
		l.prog.Free(handleBytes)
		l.prog.Free(listHeaderBytes)
		return err
	}
	inner.head, inner.tail = segStart, segEnd
	inner.count = cnt
	reparentNodes(segStart, inner)

	if err := l.insertRefAt(op, s, h); err != nil {
		reparentNodes(segStart, l)
		l.reinsertSegment(s, segStart, segEnd, cnt)
		removeBackPointer(inner, h)
		l.prog.Free(handleBytes)
		inner.head, inner.tail = nil, nil
		l.prog.Free(listHeaderBytes)
		return err
	}
	return nil
}

// Delist implements spec §4.G `delist`: the reverse of Enlist. The list
// child at index is spliced open, its entire node chain moving into l in
// place of the single slot it occupied, and its now-unused inside handle
// is dropped.
func (l *List) Delist(index int64) error {
	const op = "Delist"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return err
	}
	if l.kindAt(pos) != KindList {
		return errs.NewWrongKind(op, "child is an int, not a list")
	}
	inner := l.refAt(pos).target
	if l.count-1+inner.count > l.prog.MaxChildren() {
		return errs.NewListOverflow(op, "splicing would exceed MAX_CHILDREN")
	}

	// Force pos to a node boundary before removeAt touches anything: this
	// is the only point in this op that can need a fresh node allocation,
	// so doing it first means an alloc-fail here leaves l completely
	// unchanged. It also guarantees the splitAtBoundary call below, after
	// the single-slot removeAt, lands exactly on the node boundary
	// removeAt leaves behind and never itself needs to split.
	if _, _, err := l.splitAtBoundary(op, pos); err != nil {
		return err
	}

	_, _, h := l.removeAt(pos)
	before, after, _ := l.splitAtBoundary(op, pos)

	if inner.count > 0 {
		reparentNodes(inner.head, l)
		if before != nil {
			before.next = inner.head
		} else {
			l.head = inner.head
		}
		inner.head.prev = before
		if after != nil {
			after.prev = inner.tail
		} else {
			l.tail = inner.tail
		}
		inner.tail.next = after
		l.count += inner.count
	}
	inner.head, inner.tail = nil, nil
	inner.count = 0

	removeBackPointer(inner, h)
	l.prog.Free(handleBytes)
	collect(inner)
	return nil
}

// Compare implements spec §4.G `compare`: a total order with ints
// sorting before lists, lexicographic comparison of matching-kind
// children, shorter-is-less on a common prefix, and coinductive equality
// so that cyclic structures compare without recursing forever. visited
// tracks pairs currently assumed equal while walking; if the walk
// returns to an already-assumed-equal pair, that pair contributes
// Equal without descending again.
func Compare(a, b *List) CompareResult {
	return compareLists(a, b, map[[2]*List]bool{})
}

func compareLists(a, b *List, visited map[[2]*List]bool) CompareResult {
	if a == b {
		return Equal
	}
	key := [2]*List{a, b}
	if visited[key] {
		return Equal
	}
	visited[key] = true

	n := a.count
	if b.count < n {
		n = b.count
	}
	for i := int64(0); i < n; i++ {
		ak, bk := a.kindAt(i), b.kindAt(i)
		if ak != bk {
			if ak == KindInt {
				return Less
			}
			return Greater
		}
		if ak == KindInt {
			av, bv := a.intAt(i), b.intAt(i)
			switch {
			case av < bv:
				return Less
			case av > bv:
				return Greater
			}
			continue
		}
		if c := compareLists(a.refAt(i).target, b.refAt(i).target, visited); c != Equal {
			return c
		}
	}
	switch {
	case a.count < b.count:
		return Less
	case a.count > b.count:
		return Greater
	default:
		return Equal
	}
}

// Validate is a paranoid self-check (spec §4.C invariants P1/P2): every
// linked node holds between 1 and NODE_SIZE children, and the sum of
// per-node counts matches the list's own count.
func (l *List) Validate() error {
	const op = "Validate"
	size := l.nodeSize()
	var sum int64
	for n := l.head; n != nil; n = n.next {
		c := n.count()
		if c < 1 || c > size {
			return errs.NewPrecondition(op, "node child count out of bounds")
		}
		sum += int64(c)
	}
	if sum != l.count {
		return errs.NewPrecondition(op, "node child counts do not sum to list count")
	}
	return nil
}
