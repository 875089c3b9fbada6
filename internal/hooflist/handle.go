package hooflist

import "github.com/GeekHorse/Trot-sub001/internal/errs"

// Ref is a client-visible handle to a List (spec §3/§4.D). Every Ref
// records the list it targets and its parent slot: root (held by
// external client code) or inside a specific list (stored as one of
// that list's reference-node children). The set of every Ref targeting
// a list L is exactly L's back-pointer set (H1).
type Ref struct {
	target *List
	isRoot bool
	parent *List // meaningful only when !isRoot
}

// Target returns the list this handle points to, or nil if the handle
// has already been dropped.
func (h *Ref) Target() *List { return h.target }

// IsRoot reports whether this handle is a root handle (held by client
// code) as opposed to one stored inside a list.
func (h *Ref) IsRoot() bool { return h.isRoot }

func newRootHandle(op string, target *List) (*Ref, error) {
	if err := target.prog.Alloc(op, handleBytes); err != nil {
		return nil, err
	}
	h := &Ref{target: target, isRoot: true}
	target.back = append(target.back, h)
	return h, nil
}

// newInsideHandle allocates a fresh Ref whose parent slot is "inside
// parent", targeting target, and registers it in target's back-pointer
// set (H1). Used whenever a list gains a new reference child: the
// caller's own Ref is never consumed, matching the original source's
// "twin" naming for AppendListTwin/InsertListTwin.
func newInsideHandle(op string, parent, target *List) (*Ref, error) {
	if err := target.prog.Alloc(op, handleBytes); err != nil {
		return nil, err
	}
	h := &Ref{target: target, parent: parent}
	target.back = append(target.back, h)
	return h, nil
}

func removeBackPointer(target *List, h *Ref) {
	for i, bp := range target.back {
		if bp == h {
			target.back = append(target.back[:i], target.back[i+1:]...)
			return
		}
	}
}

// Twin implements spec §4.D `twin`: produces a new root handle to the
// same list h targets. Sharing, not copying.
func Twin(h *Ref) (*Ref, error) {
	const op = "Twin"
	if h == nil || h.target == nil {
		return nil, errs.NewPrecondition(op, "nil or already-dropped handle")
	}
	return newRootHandle(op, h.target)
}

// Drop implements spec §4.D `drop`: unregisters h from its target's
// back-pointer set, then runs the reachability collector anchored at
// the target. h must not be used again after Drop returns.
func Drop(h *Ref) error {
	const op = "Drop"
	if h == nil || h.target == nil {
		return errs.NewPrecondition(op, "nil or already-dropped handle")
	}
	target := h.target
	removeBackPointer(target, h)
	target.prog.Free(handleBytes)
	h.target = nil
	collect(target)
	return nil
}

// RefCompare implements spec §4.D `ref_compare`: an identity check on
// the targeted list, not structural equality.
func RefCompare(a, b *Ref) bool {
	if a == nil || b == nil {
		return false
	}
	return a.target != nil && a.target == b.target
}
