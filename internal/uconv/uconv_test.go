package uconv

import (
	"testing"

	"github.com/GeekHorse/Trot-sub001/internal/errs"
)

func TestRoundTripBMPAndSupplementary(t *testing.T) {
	chars := []int32{'H', 'e', 'l', 'l', 'o', 0x4E2D, 0x1F600}
	bytes, err := CharsToUtf8(chars)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Utf8ToChars(bytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(chars) {
		t.Fatalf("round trip length = %d, want %d", len(back), len(chars))
	}
	for i, c := range chars {
		if back[i] != c {
			t.Fatalf("position %d = %#x, want %#x", i, back[i], c)
		}
	}
}

func TestSurrogateRejected(t *testing.T) {
	if _, err := CharsToUtf8([]int32{0xD800}); err == nil {
		t.Fatal("expected surrogate code point to be rejected")
	} else if kind, ok := errs.KindOf(err); !ok || kind != errs.Unicode {
		t.Fatalf("error kind = %v, want Unicode", kind)
	}
}

func TestAboveMaxRejected(t *testing.T) {
	if _, err := CharsToUtf8([]int32{0x110000}); err == nil {
		t.Fatal("expected code point above U+10FFFF to be rejected")
	}
}

func TestOverlongEncodingRejected(t *testing.T) {
	// 0xC0 0x80 is an over-long two-byte encoding of NUL.
	if _, err := Utf8ToChars([]byte{0xC0, 0x80}); err == nil {
		t.Fatal("expected over-long encoding to be rejected")
	}
}

func TestBadLeadByteRejected(t *testing.T) {
	for _, b := range []byte{0x80, 0xC1, 0xF5, 0xFF} {
		if _, err := Utf8ToChars([]byte{b}); err == nil {
			t.Fatalf("expected lead byte %#x to be rejected", b)
		}
	}
}

func TestTruncatedSequenceRejected(t *testing.T) {
	if _, err := Utf8ToChars([]byte{0xE4, 0xB8}); err == nil {
		t.Fatal("expected truncated 3-byte sequence to be rejected")
	}
}

func TestMissingContinuationByteRejected(t *testing.T) {
	if _, err := Utf8ToChars([]byte{0xE4, 0x20, 0xAD}); err == nil {
		t.Fatal("expected missing continuation byte to be rejected")
	}
}

func TestWhitespacePredicate(t *testing.T) {
	want := []int32{0x0009, 0x0020, 0x00A0, 0x2028, 0x3000}
	for _, c := range want {
		if !IsWhitespace(c) {
			t.Fatalf("IsWhitespace(%#x) = false, want true", c)
		}
	}
	notWant := []int32{'a', '0', 0x2030, 0x200B}
	for _, c := range notWant {
		if IsWhitespace(c) {
			t.Fatalf("IsWhitespace(%#x) = true, want false", c)
		}
	}
}
