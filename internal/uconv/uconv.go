// Package uconv implements Trot's Unicode conversion surface (spec §6):
// strict UTF-8 encode/decode over lists of code points, plus the
// documented whitespace predicate. Go's unicode/utf8 package is
// deliberately not used for decoding: DecodeRune silently substitutes
// utf8.RuneError on any malformed input instead of discriminating which
// rejection reason applies, and Trot's contract requires a *unicode*
// error rather than a silent substitution.
package uconv

import (
	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
	"github.com/GeekHorse/Trot-sub001/internal/program"
)

// CharsToUtf8 encodes a sequence of code points into UTF-8 bytes. Any
// code point in the surrogate range or above U+10FFFF is rejected with
// *unicode*; the list is never partially converted.
func CharsToUtf8(chars []int32) ([]byte, error) {
	const op = "CharsToUtf8"
	out := make([]byte, 0, len(chars))
	for _, c := range chars {
		if err := checkCodePoint(op, c); err != nil {
			return nil, err
		}
		out = appendUtf8(out, c)
	}
	return out, nil
}

func checkCodePoint(op string, c int32) error {
	if c < 0 || c > 0x10FFFF {
		return errs.NewUnicode(op, "code point out of range")
	}
	if c >= 0xD800 && c <= 0xDFFF {
		return errs.NewUnicode(op, "code point in surrogate range")
	}
	return nil
}

func appendUtf8(out []byte, c int32) []byte {
	switch {
	case c <= 0x7F:
		return append(out, byte(c))
	case c <= 0x7FF:
		return append(out,
			byte(0xC0|(c>>6)),
			byte(0x80|(c&0x3F)),
		)
	case c <= 0xFFFF:
		return append(out,
			byte(0xE0|(c>>12)),
			byte(0x80|((c>>6)&0x3F)),
			byte(0x80|(c&0x3F)),
		)
	default:
		return append(out,
			byte(0xF0|(c>>18)),
			byte(0x80|((c>>12)&0x3F)),
			byte(0x80|((c>>6)&0x3F)),
			byte(0x80|(c&0x3F)),
		)
	}
}

// Utf8ToChars strictly decodes UTF-8 bytes into code points. Over-long
// forms, lead bytes 0x80..0xC1 and 0xF5..0xFF, any continuation-byte
// violation, the surrogate range, and values above U+10FFFF all reject
// with *unicode*.
func Utf8ToChars(data []byte) ([]int32, error) {
	const op = "Utf8ToChars"
	out := make([]int32, 0, len(data))
	i := 0
	for i < len(data) {
		b0 := data[i]
		var n int
		var c int32
		var min int32
		switch {
		case b0 <= 0x7F:
			out = append(out, int32(b0))
			i++
			continue
		case b0 >= 0xC2 && b0 <= 0xDF:
			n, c, min = 1, int32(b0&0x1F), 0x80
		case b0 >= 0xE0 && b0 <= 0xEF:
			n, c, min = 2, int32(b0&0x0F), 0x800
		case b0 >= 0xF0 && b0 <= 0xF4:
			n, c, min = 3, int32(b0&0x07), 0x10000
		default:
			// 0x80..0xC1 (continuation byte or overlong 2-byte lead) and
			// 0xF5..0xFF (would only ever encode > U+10FFFF).
			return nil, errs.NewUnicode(op, "invalid UTF-8 lead byte")
		}
		if i+n >= len(data) {
			return nil, errs.NewUnicode(op, "truncated UTF-8 sequence")
		}
		for j := 1; j <= n; j++ {
			cb := data[i+j]
			if cb&0xC0 != 0x80 {
				return nil, errs.NewUnicode(op, "expected UTF-8 continuation byte")
			}
			c = (c << 6) | int32(cb&0x3F)
		}
		if c < min {
			return nil, errs.NewUnicode(op, "over-long UTF-8 encoding")
		}
		if err := checkCodePoint(op, c); err != nil {
			return nil, err
		}
		out = append(out, c)
		i += n + 1
	}
	return out, nil
}

// whitespace is the documented set (spec §6), not Unicode's full White_Space
// property: everything outside this table is non-whitespace.
var whitespace = map[int32]bool{
	0x0009: true, 0x000A: true, 0x000B: true, 0x000C: true, 0x000D: true,
	0x0020: true, 0x0085: true, 0x00A0: true, 0x1680: true, 0x180E: true,
	0x2000: true, 0x2001: true, 0x2002: true, 0x2003: true, 0x2004: true,
	0x2005: true, 0x2006: true, 0x2007: true, 0x2008: true, 0x2009: true,
	0x200A: true, 0x2028: true, 0x2029: true, 0x202F: true, 0x205F: true,
	0x3000: true,
}

// IsWhitespace implements Trot's documented whitespace predicate.
func IsWhitespace(c int32) bool {
	return whitespace[c]
}

// listToInts reads every child of l as an int, failing *wrong-kind* the
// moment a list-kind child is found (spec §6 "Any element that is a
// list-kind child causes wrong-kind").
func listToInts(op string, l *hooflist.List) ([]int32, error) {
	n := l.Count()
	out := make([]int32, 0, n)
	for i := int64(0); i < n; i++ {
		v, err := l.GetInt(i + 1)
		if err != nil {
			return nil, errs.NewWrongKind(op, "non-int child in conversion input")
		}
		out = append(out, v)
	}
	return out, nil
}

func intsToList(op string, p *program.Program, vals []int32) (*hooflist.List, *hooflist.Ref, error) {
	l, h, err := hooflist.NewList(p)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range vals {
		if err := l.AppendInt(v); err != nil {
			hooflist.Drop(h)
			return nil, nil, err
		}
	}
	return l, h, nil
}

// CharsToUtf8List implements `chars_to_utf8`: converts a Hoof list of
// code points into a fresh Hoof list of bytes (each 0..255).
func CharsToUtf8List(p *program.Program, chars *hooflist.List) (*hooflist.List, *hooflist.Ref, error) {
	const op = "CharsToUtf8"
	vals, err := listToInts(op, chars)
	if err != nil {
		return nil, nil, err
	}
	raw, err := CharsToUtf8(vals)
	if err != nil {
		return nil, nil, err
	}
	out := make([]int32, len(raw))
	for i, b := range raw {
		out[i] = int32(b)
	}
	return intsToList(op, p, out)
}

// Utf8ToCharsList implements `utf8_to_chars`: converts a Hoof list of
// bytes into a fresh Hoof list of code points.
func Utf8ToCharsList(p *program.Program, bytesList *hooflist.List) (*hooflist.List, *hooflist.Ref, error) {
	const op = "Utf8ToChars"
	vals, err := listToInts(op, bytesList)
	if err != nil {
		return nil, nil, err
	}
	raw := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 0xFF {
			return nil, nil, errs.NewUnicode(op, "byte value out of range")
		}
		raw[i] = byte(v)
	}
	chars, err := Utf8ToChars(raw)
	if err != nil {
		return nil, nil, err
	}
	return intsToList(op, p, chars)
}
