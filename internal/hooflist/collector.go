package hooflist

import "github.com/GeekHorse/Trot-sub001/internal/program"

// collect implements spec §4.E, the reachability collector, strengthened
// to guarantee RC1/RC2 for every topology (see DESIGN.md "Open Questions
// resolved" — reclaiming an unreachable ancestor set can expose forward
// children that themselves lose their last back-pointer; those children
// are queued for their own reachability check rather than assumed
// automatically self-contained). The walk itself never recurses on the
// call stack proportional to graph depth: both the backward walk and the
// reclaim-cascade use explicit work lists.
func collect(start *List) {
	reclaimed := make(map[*List]bool)
	queued := map[*List]bool{start: true}
	queue := []*List{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if reclaimed[cur] {
			continue
		}

		reachable, visited := backwardWalk(cur, reclaimed)
		if reachable {
			continue
		}

		for _, v := range visited {
			reclaimed[v] = true
		}
		for _, v := range visited {
			for _, child := range destroyListBody(v) {
				if !reclaimed[child] && !queued[child] {
					queued[child] = true
					queue = append(queue, child)
				}
			}
		}
	}
}

// backwardWalk performs the bounded DFS described in spec §4.E: starting
// at start, follow back-pointers outward. A root back-pointer proves
// reachability; an inside back-pointer whose parent has already been
// visited this walk is a cycle and is ignored; otherwise the parent is
// added to the frontier. reclaimed lists are treated as already gone
// (their own back-pointers were wiped when they were destroyed, so they
// never contribute new frontier entries, but a list already marked
// reclaimed earlier in this same collect() call must not be re-walked).
func backwardWalk(start *List, reclaimed map[*List]bool) (bool, []*List) {
	if reclaimed[start] {
		return false, nil
	}

	visited := map[*List]bool{start: true}
	order := []*List{start}
	frontier := []*List{start}

	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for _, bp := range cur.back {
			if bp.isRoot {
				return true, nil
			}
			p := bp.parent
			if visited[p] {
				continue
			}
			visited[p] = true
			order = append(order, p)
			frontier = append(frontier, p)
		}
	}
	return false, order
}

// destroyListBody frees v's nodes and header, deregistering every
// reference child's back-pointer along the way (spec §4.E
// "Reclamation"). Returns the distinct child lists that were touched, so
// the caller can re-check their reachability.
func destroyListBody(v *List) []*List {
	touched := freeNodeChain(v.prog, v.head)
	v.head, v.tail = nil, nil
	v.count = 0
	v.back = nil
	v.prog.Free(listHeaderBytes)
	return touched
}

// freeNodeChain frees every node from head to the end of its chain
// (following next pointers), deregistering and freeing any reference
// children along the way, charging everything to prog. Returns the
// distinct child lists that were touched. Used both when a whole list is
// reclaimed (destroyListBody) and when a detached span of nodes is
// discarded outright (RemoveSpan).
func freeNodeChain(prog *program.Program, head *node) []*List {
	var touched []*List
	seen := map[*List]bool{}

	for n := head; n != nil; {
		next := n.next
		if n.kind == nodeKindList {
			for _, h := range n.refs {
				removeBackPointer(h.target, h)
				prog.Free(handleBytes)
				if !seen[h.target] {
					seen[h.target] = true
					touched = append(touched, h.target)
				}
			}
		}
		// Every node, whatever its live kind or slice cap, was charged
		// nodeBytes(NodeSize) at creation (see list.go's removeAt for the
		// same reasoning); free must match that fixed size.
		prog.Free(nodeBytes(prog.NodeSize()))
		n = next
	}
	return touched
}
