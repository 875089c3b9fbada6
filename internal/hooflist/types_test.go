package hooflist

import "testing"

func TestResolveIndexPositiveAndNegative(t *testing.T) {
	const n = 5
	cases := []struct {
		idx  int64
		want int64
	}{
		{1, 0},
		{5, 4},
		{-1, 4},
		{-5, 0},
	}
	for _, c := range cases {
		got, err := resolveIndex("test", n, c.idx)
		if err != nil {
			t.Fatalf("resolveIndex(%d): %v", c.idx, err)
		}
		if got != c.want {
			t.Fatalf("resolveIndex(%d) = %d, want %d", c.idx, got, c.want)
		}
	}
}

func TestResolveIndexOutOfRange(t *testing.T) {
	for _, idx := range []int64{0, 6, -6} {
		if _, err := resolveIndex("test", 5, idx); err == nil {
			t.Fatalf("resolveIndex(%d) with n=5 should fail", idx)
		}
	}
}

func TestResolveIndexEmptyList(t *testing.T) {
	if _, err := resolveIndex("test", 0, 1); err == nil {
		t.Fatal("resolveIndex(1) on an empty list (n=0) should fail")
	}
}
