package codec

import (
	"strconv"

	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
	"github.com/GeekHorse/Trot-sub001/internal/program"
)

// Encode implements `encode`: serializes l into a fresh byte list using
// the grammar documented in doc.go. Lists are numbered in DFS pre-order
// the first time they're reached, purely as a function of traversal
// order, which is what makes re-encoding a freshly decoded document
// reproduce byte-identical output (the required fixed point).
func Encode(p *program.Program, l *hooflist.List) (*hooflist.List, *hooflist.Ref, error) {
	const op = "Encode"
	assigned := map[*hooflist.List]int64{}
	var next int64 = 1
	var buf []byte
	if err := encodeValue(op, l, &buf, assigned, &next); err != nil {
		return nil, nil, err
	}
	return bytesToList(op, p, buf)
}

func writeTok(buf *[]byte, s string) {
	*buf = append(*buf, s...)
	*buf = append(*buf, ' ')
}

func encodeValue(op string, l *hooflist.List, buf *[]byte, assigned map[*hooflist.List]int64, next *int64) error {
	if id, ok := assigned[l]; ok {
		writeTok(buf, "@"+strconv.FormatInt(id, 10))
		return nil
	}
	id := *next
	*next++
	assigned[l] = id

	writeTok(buf, "#"+strconv.FormatInt(id, 10))
	writeTok(buf, "t"+strconv.FormatInt(int64(l.Type()), 10))
	writeTok(buf, "g"+strconv.FormatInt(int64(l.Tag()), 10))
	writeTok(buf, "[")

	n := l.Count()
	for i := int64(1); i <= n; i++ {
		kind, err := l.GetKind(i)
		if err != nil {
			return err
		}
		if kind == hooflist.KindInt {
			v, err := l.GetInt(i)
			if err != nil {
				return err
			}
			writeTok(buf, strconv.FormatInt(int64(v), 10))
			continue
		}
		child, err := l.GetList(i)
		if err != nil {
			return err
		}
		err = encodeValue(op, child.Target(), buf, assigned, next)
		hooflist.Drop(child)
		if err != nil {
			return err
		}
	}

	writeTok(buf, "]")
	return nil
}

func bytesToList(op string, p *program.Program, raw []byte) (*hooflist.List, *hooflist.Ref, error) {
	l, h, err := hooflist.NewList(p)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range raw {
		if err := l.AppendInt(hooflist.Int(b)); err != nil {
			hooflist.Drop(h)
			return nil, nil, err
		}
	}
	return l, h, nil
}
