package hooflist

import (
	"testing"

	"github.com/GeekHorse/Trot-sub001/internal/program"
)

func TestCollectorSelfReference(t *testing.T) {
	p := program.New()
	l, h, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.AppendList(h); err != nil {
		t.Fatalf("AppendList(self): %v", err)
	}
	if p.MemGetUsed() == 0 {
		t.Fatal("expected non-zero memory usage after building a self-referential list")
	}
	if err := Drop(h); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() != 0 {
		t.Fatalf("MemGetUsed() = %d after dropping the only root, want 0 (self-reference must be collected)", p.MemGetUsed())
	}
}

func TestCollectorTwoListCycle(t *testing.T) {
	p := program.New()
	a, ha, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	b, hb, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	_ = a
	_ = b

	if err := a.AppendList(hb); err != nil {
		t.Fatalf("a.AppendList(b): %v", err)
	}
	if err := b.AppendList(ha); err != nil {
		t.Fatalf("b.AppendList(a): %v", err)
	}

	if err := Drop(ha); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() == 0 {
		t.Fatal("b is still reachable through its own surviving root hb")
	}
	if err := Drop(hb); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() != 0 {
		t.Fatalf("MemGetUsed() = %d after dropping both roots of an A/B cycle, want 0", p.MemGetUsed())
	}
}

func TestCollectorOrphanedIsland(t *testing.T) {
	// D -> E (only backpointer), and D itself becomes unreachable when
	// its own last root is dropped. E must be reclaimed too, even though
	// E was never directly on D's own backward walk frontier until D's
	// reclamation exposes it.
	p := program.New()
	d, hd, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	e, he, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	_ = e

	if err := d.AppendList(he); err != nil {
		t.Fatal(err)
	}
	Drop(he) // d's inside handle is now e's only back-pointer

	if err := Drop(hd); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() != 0 {
		t.Fatalf("MemGetUsed() = %d, want 0: orphaned child e was not reclaimed with its parent d", p.MemGetUsed())
	}
}

func TestCollectorDeepChainDoesNotOverflowStack(t *testing.T) {
	p := program.New()
	root, rootH, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}

	const depth = 2000
	cur := root
	curH := rootH
	for i := 0; i < depth; i++ {
		child, childH, err := NewList(p)
		if err != nil {
			t.Fatalf("NewList at depth %d: %v", i, err)
		}
		if err := cur.AppendList(childH); err != nil {
			t.Fatalf("AppendList at depth %d: %v", i, err)
		}
		Drop(childH)
		cur = child
		curH = nil
		_ = curH
	}

	if err := Drop(rootH); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() != 0 {
		t.Fatalf("MemGetUsed() = %d after dropping a %d-deep chain's only root, want 0", p.MemGetUsed(), depth)
	}
}
