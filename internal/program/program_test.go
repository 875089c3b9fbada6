package program

import "testing"

func TestAllocChargesAndFrees(t *testing.T) {
	p := New()
	if err := p.Alloc("test", 100); err != nil {
		t.Fatal(err)
	}
	if p.MemGetUsed() != 100 {
		t.Fatalf("MemGetUsed() = %d, want 100", p.MemGetUsed())
	}
	p.Free(40)
	if p.MemGetUsed() != 60 {
		t.Fatalf("MemGetUsed() = %d, want 60", p.MemGetUsed())
	}
}

func TestAllocFailsAtLimit(t *testing.T) {
	p := New(WithMemLimit(50))
	if err := p.Alloc("test", 50); err != nil {
		t.Fatalf("allocating exactly up to the limit should succeed: %v", err)
	}
	if err := p.Alloc("test", 1); err == nil {
		t.Fatal("expected allocation past the limit to fail")
	}
	if p.MemGetUsed() != 50 {
		t.Fatalf("MemGetUsed() = %d after failed alloc, want 50 (unchanged)", p.MemGetUsed())
	}
}

func TestLoweringLimitDoesNotReclaim(t *testing.T) {
	p := New()
	if err := p.Alloc("test", 1000); err != nil {
		t.Fatal(err)
	}
	p.MemSetLimit(10)
	if p.MemGetUsed() != 1000 {
		t.Fatalf("MemGetUsed() = %d after lowering the limit, want 1000 (unchanged)", p.MemGetUsed())
	}
	if err := p.Alloc("test", 1); err == nil {
		t.Fatal("expected further allocation to fail once usage already exceeds the new limit")
	}
}

func TestDefaults(t *testing.T) {
	p := New()
	if p.NodeSize() != 64 {
		t.Fatalf("NodeSize() = %d, want 64", p.NodeSize())
	}
	if p.MemGetLimit() != Unlimited {
		t.Fatalf("MemGetLimit() = %d, want Unlimited", p.MemGetLimit())
	}
}

func TestWithNodeSizeIgnoresTooSmall(t *testing.T) {
	p := New(WithNodeSize(2))
	if p.NodeSize() != 64 {
		t.Fatalf("NodeSize() = %d, want default 64 (size below minimum must be ignored)", p.NodeSize())
	}
	p2 := New(WithNodeSize(8))
	if p2.NodeSize() != 8 {
		t.Fatalf("NodeSize() = %d, want 8", p2.NodeSize())
	}
}
