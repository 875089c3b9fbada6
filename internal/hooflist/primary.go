package hooflist

import "github.com/GeekHorse/Trot-sub001/internal/errs"

// GetKind implements spec §4.F `get_kind`.
func (l *List) GetKind(index int64) (Kind, error) {
	const op = "GetKind"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return 0, err
	}
	return l.kindAt(pos), nil
}

// GetInt implements spec §4.F `get_int`.
func (l *List) GetInt(index int64) (Int, error) {
	const op = "GetInt"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return 0, err
	}
	if l.kindAt(pos) != KindInt {
		return 0, errs.NewWrongKind(op, "child is a list, not an int")
	}
	return l.intAt(pos), nil
}

// GetList implements spec §4.F `get_list`: returns a new root handle
// twinning the child at index.
func (l *List) GetList(index int64) (*Ref, error) {
	const op = "GetList"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return nil, err
	}
	if l.kindAt(pos) != KindList {
		return nil, errs.NewWrongKind(op, "child is an int, not a list")
	}
	return newRootHandle(op, l.refAt(pos).target)
}

func (l *List) checkRoomForOne(op string) error {
	if l.count+1 > l.prog.MaxChildren() {
		return errs.NewListOverflow(op, "child count would exceed MAX_CHILDREN")
	}
	return nil
}

// AppendInt implements spec §4.F `append_int`.
func (l *List) AppendInt(n Int) error {
	const op = "AppendInt"
	if err := l.checkRoomForOne(op); err != nil {
		return err
	}
	return l.insertIntAt(op, l.count, n)
}

// InsertInt implements spec §4.F `insert_int`.
func (l *List) InsertInt(index int64, n Int) error {
	const op = "InsertInt"
	pos, err := resolveIndex(op, l.count+1, index)
	if err != nil {
		return err
	}
	if err := l.checkRoomForOne(op); err != nil {
		return err
	}
	return l.insertIntAt(op, pos, n)
}

// AppendList implements spec §4.F `append_list`: twins child into a new
// inside handle appended to l.
func (l *List) AppendList(child *Ref) error {
	const op = "AppendList"
	if child == nil || child.target == nil {
		return errs.NewPrecondition(op, "nil or dropped handle")
	}
	if err := l.checkRoomForOne(op); err != nil {
		return err
	}
	h, err := newInsideHandle(op, l, child.target)
	if err != nil {
		return err
	}
	if err := l.insertRefAt(op, l.count, h); err != nil {
		removeBackPointer(child.target, h)
		l.prog.Free(handleBytes)
		return err
	}
	return nil
}

// InsertList implements spec §4.F `insert_list`.
func (l *List) InsertList(index int64, child *Ref) error {
	const op = "InsertList"
	if child == nil || child.target == nil {
		return errs.NewPrecondition(op, "nil or dropped handle")
	}
	pos, err := resolveIndex(op, l.count+1, index)
	if err != nil {
		return err
	}
	if err := l.checkRoomForOne(op); err != nil {
		return err
	}
	h, err := newInsideHandle(op, l, child.target)
	if err != nil {
		return err
	}
	if err := l.insertRefAt(op, pos, h); err != nil {
		removeBackPointer(child.target, h)
		l.prog.Free(handleBytes)
		return err
	}
	return nil
}

// RemoveInt implements spec §4.F `remove_int`.
func (l *List) RemoveInt(index int64) (Int, error) {
	const op = "RemoveInt"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return 0, err
	}
	if l.kindAt(pos) != KindInt {
		return 0, errs.NewWrongKind(op, "child is a list, not an int")
	}
	_, v, _ := l.removeAt(pos)
	return v, nil
}

// RemoveList implements spec §4.F `remove_list`: removes the reference
// child at index and returns a fresh root handle to the same target (the
// inside handle that was stored in the slot is deregistered and freed;
// the collector then decides whether the target is still reachable
// through the handle this call returns or any other surviving path).
func (l *List) RemoveList(index int64) (*Ref, error) {
	const op = "RemoveList"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return nil, err
	}
	if l.kindAt(pos) != KindList {
		return nil, errs.NewWrongKind(op, "child is an int, not a list")
	}
	_, _, old := l.removeAt(pos)
	target := old.target
	removeBackPointer(target, old)
	l.prog.Free(handleBytes)

	newH, err := newRootHandle(op, target)
	if err != nil {
		// Collector must still run even though we can't hand back a
		// fresh root: the removed slot's handle is already gone.
		collect(target)
		return nil, err
	}
	return newH, nil
}

// Remove implements spec §4.F `remove`: removes and discards the element
// at index regardless of kind.
func (l *List) Remove(index int64) error {
	const op = "Remove"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return err
	}
	kind, _, h := l.removeAt(pos)
	if kind == KindList {
		target := h.target
		removeBackPointer(target, h)
		l.prog.Free(handleBytes)
		collect(target)
	}
	return nil
}

// ReplaceWithInt implements spec §4.F `replace_with_int`.
func (l *List) ReplaceWithInt(index int64, n Int) error {
	const op = "ReplaceWithInt"
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return err
	}
	if l.kindAt(pos) == KindInt {
		nn, offset := l.locate(pos)
		nn.ints[offset] = n
		return nil
	}
	kind, _, oldH := l.removeAt(pos)
	_ = kind
	target := oldH.target
	if err := l.insertIntAt(op, pos, n); err != nil {
		// Roll back: put the old handle back so state is unchanged.
		l.insertRefAt(op, pos, oldH)
		return err
	}
	removeBackPointer(target, oldH)
	l.prog.Free(handleBytes)
	collect(target)
	return nil
}

// ReplaceWithList implements spec §4.F `replace_with_list`.
func (l *List) ReplaceWithList(index int64, child *Ref) error {
	const op = "ReplaceWithList"
	if child == nil || child.target == nil {
		return errs.NewPrecondition(op, "nil or dropped handle")
	}
	pos, err := resolveIndex(op, l.count, index)
	if err != nil {
		return err
	}

	newH, err := newInsideHandle(op, l, child.target)
	if err != nil {
		return err
	}

	wasList := l.kindAt(pos) == KindList
	var oldTarget *List
	var oldH *Ref
	var oldV Int
	if wasList {
		_, _, oldH = l.removeAt(pos)
		oldTarget = oldH.target
	} else {
		_, oldV, _ = l.removeAt(pos)
	}
	if err := l.insertRefAt(op, pos, newH); err != nil {
		// Roll back removal.
		if wasList {
			l.insertRefAt(op, pos, oldH)
		} else {
			l.insertIntAt(op, pos, oldV)
		}
		removeBackPointer(child.target, newH)
		l.prog.Free(handleBytes)
		return err
	}
	if wasList {
		removeBackPointer(oldTarget, oldH)
		l.prog.Free(handleBytes)
		collect(oldTarget)
	}
	return nil
}
