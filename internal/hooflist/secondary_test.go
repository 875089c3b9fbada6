package hooflist

import (
	"testing"

	"github.com/GeekHorse/Trot-sub001/internal/program"
)

func buildIntList(t *testing.T, p *program.Program, vals ...Int) (*List, *Ref) {
	t.Helper()
	l, h, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range vals {
		if err := l.AppendInt(v); err != nil {
			t.Fatal(err)
		}
	}
	return l, h
}

func listInts(t *testing.T, l *List) []Int {
	t.Helper()
	out := make([]Int, 0, l.Count())
	for i := int64(1); i <= l.Count(); i++ {
		v, err := l.GetInt(i)
		if err != nil {
			t.Fatalf("GetInt(%d): %v", i, err)
		}
		out = append(out, v)
	}
	return out
}

func assertInts(t *testing.T, l *List, want []Int) {
	t.Helper()
	got := listInts(t, l)
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d (got %v, want %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d = %d, want %d (got %v, want %v)", i+1, got[i], want[i], got, want)
		}
	}
}

func TestEnlistThenDelistRoundTrips(t *testing.T) {
	p := program.New()
	l, _ := buildIntList(t, p, 1, 2, 3, 4, 5)

	if err := l.Enlist(2, 4); err != nil {
		t.Fatalf("Enlist: %v", err)
	}
	if l.Count() != 3 {
		t.Fatalf("Count() = %d after enlist, want 3", l.Count())
	}
	kind, err := l.GetKind(2)
	if err != nil {
		t.Fatal(err)
	}
	if kind != KindList {
		t.Fatalf("slot 2 kind = %v, want KindList", kind)
	}
	inner, err := l.GetList(2)
	if err != nil {
		t.Fatal(err)
	}
	assertInts(t, inner.Target(), []Int{2, 3, 4})
	Drop(inner)

	if err := l.Delist(2); err != nil {
		t.Fatalf("Delist: %v", err)
	}
	assertInts(t, l, []Int{1, 2, 3, 4, 5})
	if err := l.Validate(); err != nil {
		t.Fatalf("Validate after round trip: %v", err)
	}
}

func TestCopySpanIsIndependent(t *testing.T) {
	p := program.New()
	l, _ := buildIntList(t, p, 10, 20, 30, 40)

	cp, cpRoot, err := l.CopySpan(2, 3)
	if err != nil {
		t.Fatalf("CopySpan: %v", err)
	}
	assertInts(t, cp, []Int{20, 30})

	if err := l.ReplaceWithInt(2, 999); err != nil {
		t.Fatal(err)
	}
	assertInts(t, cp, []Int{20, 30}) // unaffected by mutating the source
	Drop(cpRoot)
}

func TestRemoveSpan(t *testing.T) {
	p := program.New()
	l, _ := buildIntList(t, p, 1, 2, 3, 4, 5)

	if err := l.RemoveSpan(2, 4); err != nil {
		t.Fatalf("RemoveSpan: %v", err)
	}
	assertInts(t, l, []Int{1, 5})
}

func TestCompareStructural(t *testing.T) {
	p := program.New()
	a, _ := buildIntList(t, p, 1, 2, 3)
	b, _ := buildIntList(t, p, 1, 2, 3)
	if Compare(a, b) != Equal {
		t.Fatal("structurally identical lists should compare Equal")
	}

	c, _ := buildIntList(t, p, 1, 2, 4)
	if Compare(a, c) != Less {
		t.Fatal("[1 2 3] should compare Less than [1 2 4]")
	}

	shorter, _ := buildIntList(t, p, 1, 2)
	if Compare(shorter, a) != Less {
		t.Fatal("a proper prefix should compare Less than the longer list")
	}
}

func TestCompareCyclicDoesNotHang(t *testing.T) {
	p := program.New()
	a, ha, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.AppendList(ha); err != nil {
		t.Fatal(err)
	}
	b, hb, err := NewList(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AppendList(hb); err != nil {
		t.Fatal(err)
	}

	result := Compare(a, b)
	if result != Equal {
		t.Fatalf("Compare of two self-referential singleton lists = %v, want Equal", result)
	}
	Drop(ha)
	Drop(hb)
}

func TestCompareIdentityShortCircuit(t *testing.T) {
	p := program.New()
	l, _ := buildIntList(t, p, 1, 2, 3)
	if Compare(l, l) != Equal {
		t.Fatal("a list compared with itself must be Equal")
	}
}
