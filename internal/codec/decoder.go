package codec

import (
	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
	"github.com/GeekHorse/Trot-sub001/internal/program"
	"github.com/GeekHorse/Trot-sub001/internal/uconv"
)

// parsedValue is either an int or a handle to a (possibly still being
// filled in) list, whichever parseValue most recently produced.
type parsedValue struct {
	isInt bool
	n     hooflist.Int
	ref   *hooflist.Ref
}

// Decode implements `decode`: parses a byte list produced by Encode (or
// any well-formed document in the same grammar) back into a list graph.
// Any malformed token sequence, unterminated list, or reference to an
// undefined label fails with *decode*; decode never leaves a partially
// built document behind for the caller to see.
func Decode(p *program.Program, byteList *hooflist.List) (*hooflist.List, *hooflist.Ref, error) {
	const op = "Decode"
	raw, err := listToBytes(op, byteList)
	if err != nil {
		return nil, nil, err
	}
	chars, err := uconv.Utf8ToChars(raw)
	if err != nil {
		return nil, nil, errs.NewDecode(op, "byte list is not valid UTF-8")
	}

	s := newScanner(chars)
	labels := map[int64]*hooflist.Ref{}
	var order []int64

	val, err := parseValue(op, p, s, labels, &order)
	if err != nil {
		unwind(order, labels, nil)
		return nil, nil, err
	}
	if val.isInt {
		unwind(order, labels, nil)
		return nil, nil, errs.NewDecode(op, "top-level value must be a list")
	}
	if tok := s.next(); tok.kind != tokEOF {
		unwind(order, labels, val.ref)
		return nil, nil, errs.NewDecode(op, "trailing data after document")
	}

	root := val.ref
	unwind(order, labels, root)
	return root.Target(), root, nil
}

// unwind drops every labeled handle gathered while parsing except keep
// (the document root, when parsing succeeded), now that every list is
// reachable through the inside handle its parent holds. When keep is nil
// (parse failed), every labeled list is dropped, which the collector then
// reclaims entirely since none of them has any other surviving root.
func unwind(order []int64, labels map[int64]*hooflist.Ref, keep *hooflist.Ref) {
	for _, lbl := range order {
		h := labels[lbl]
		if h != keep {
			hooflist.Drop(h)
		}
	}
}

func parseValue(op string, p *program.Program, s *scanner, labels map[int64]*hooflist.Ref, order *[]int64) (parsedValue, error) {
	tok := s.next()
	switch tok.kind {
	case tokNumber:
		return parsedValue{isInt: true, n: hooflist.Int(tok.num)}, nil

	case tokAt:
		lbl := s.next()
		if lbl.kind != tokNumber {
			return parsedValue{}, errs.NewDecode(op, "expected label number after @")
		}
		h, ok := labels[lbl.num]
		if !ok {
			return parsedValue{}, errs.NewDecode(op, "reference to undefined label")
		}
		return parsedValue{ref: h}, nil

	case tokHash:
		lbl := s.next()
		if lbl.kind != tokNumber {
			return parsedValue{}, errs.NewDecode(op, "expected label number after #")
		}
		if _, exists := labels[lbl.num]; exists {
			return parsedValue{}, errs.NewDecode(op, "label defined more than once")
		}
		l, h, err := hooflist.NewList(p)
		if err != nil {
			return parsedValue{}, err
		}
		labels[lbl.num] = h
		*order = append(*order, lbl.num)

		tTok := s.next()
		if tTok.kind != tokType {
			return parsedValue{}, errs.NewDecode(op, "expected type field")
		}
		tVal := s.next()
		if tVal.kind != tokNumber {
			return parsedValue{}, errs.NewDecode(op, "expected type value")
		}
		if err := l.SetType(int32(tVal.num)); err != nil {
			return parsedValue{}, err
		}

		gTok := s.next()
		if gTok.kind != tokTag {
			return parsedValue{}, errs.NewDecode(op, "expected tag field")
		}
		gVal := s.next()
		if gVal.kind != tokNumber {
			return parsedValue{}, errs.NewDecode(op, "expected tag value")
		}
		l.SetTag(int32(gVal.num))

		if open := s.next(); open.kind != tokLBrack {
			return parsedValue{}, errs.NewDecode(op, "expected [")
		}
		for {
			if s.peek().kind == tokRBrack {
				s.next()
				break
			}
			if s.peek().kind == tokEOF {
				return parsedValue{}, errs.NewDecode(op, "unterminated list")
			}
			child, err := parseValue(op, p, s, labels, order)
			if err != nil {
				return parsedValue{}, err
			}
			if child.isInt {
				if err := l.AppendInt(child.n); err != nil {
					return parsedValue{}, err
				}
			} else if err := l.AppendList(child.ref); err != nil {
				return parsedValue{}, err
			}
		}
		return parsedValue{ref: h}, nil

	default:
		return parsedValue{}, errs.NewDecode(op, "unexpected token")
	}
}

func listToBytes(op string, l *hooflist.List) ([]byte, error) {
	n := l.Count()
	out := make([]byte, 0, n)
	for i := int64(1); i <= n; i++ {
		v, err := l.GetInt(i)
		if err != nil {
			return nil, errs.NewDecode(op, "byte list contains a non-int child")
		}
		if v < 0 || v > 0xFF {
			return nil, errs.NewDecode(op, "byte value out of range")
		}
		out = append(out, byte(v))
	}
	return out, nil
}
