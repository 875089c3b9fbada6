package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestKindOfAndIs(t *testing.T) {
	err := NewWrongKind("Op", "boom")
	kind, ok := KindOf(err)
	if !ok || kind != WrongKind {
		t.Fatalf("KindOf = (%v, %v), want (WrongKind, true)", kind, ok)
	}
	if !Is(err, WrongKind) {
		t.Fatal("Is(err, WrongKind) = false, want true")
	}
	if Is(err, BadIndex) {
		t.Fatal("Is(err, BadIndex) = true, want false")
	}
}

func TestKindOfNonTrotError(t *testing.T) {
	if _, ok := KindOf(errors.New("plain error")); ok {
		t.Fatal("KindOf on a non-*errs.Error should report ok=false")
	}
}

func TestErrorStringIncludesOpAndKind(t *testing.T) {
	err := New("AppendInt", ListOverflow, "too many children")
	got := err.Error()
	if got == "" {
		t.Fatal("Error() returned empty string")
	}
	if !strings.Contains(got, "AppendInt") || !strings.Contains(got, "list-overflow") {
		t.Fatalf("Error() = %q, want it to include the op %q and the kind %q", got, "AppendInt", "list-overflow")
	}
}
