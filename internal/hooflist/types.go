// Package hooflist implements Trot's core data structure: the Hoof list
// (spec §3-4). A Hoof list is an ordered, chunked sequence of children
// that are either bounded signed integers or references (Ref) to other
// lists, plus small typed metadata (type/tag). This package owns the
// node-chunk store (§4.B), the list object (§4.C), the client-visible
// handle (§4.D), the reachability collector (§4.E), and both the
// primary (§4.F) and secondary (§4.G) operation tables.
//
// Everything here is single-threaded per spec §5: a Program and every
// List/Ref allocated under it form one serial domain. Concurrent
// mutation of one Program from multiple goroutines is undefined, exactly
// as §5 specifies for the original model.
package hooflist

import (
	"math"

	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/program"
)

// Int is Trot's single numeric type: a bounded signed integer (spec §3).
// The original C source defines INT_TYPE as a native `int`; int32 is its
// idiomatic Go analogue of the same documented width.
type Int = int32

// IntMax and IntMin bound every Int value and every index/count derived
// from one (spec §3: "INT_MAX bounds indices and child counts").
const (
	IntMax Int = math.MaxInt32
	IntMin Int = math.MinInt32
)

// Kind distinguishes what a child slot holds.
type Kind int

const (
	// KindInt marks a child that is an Int value.
	KindInt Kind = iota + 1
	// KindList marks a child that is a reference to another list.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// CompareResult mirrors the original TROT_LIST_COMPARE_RESULT enum.
type CompareResult int

const (
	Less    CompareResult = -1
	Equal   CompareResult = 0
	Greater CompareResult = 1
)

// Simulated byte costs charged to Program for each kind of allocation.
// These are not meant to model the Go runtime's actual heap use (Go's GC
// already owns that); they model the same "charge every allocation, free
// every deallocation" ledger the original C source's trotMem.c
// implements over malloc/free, so Program.MemGetUsed behaves the way
// spec §4.A and §8's P7/P8 properties require: it is an accounting
// device, not a literal memory probe.
const (
	listHeaderBytes int64 = 96 // childCount, type, tag, head/tail, back-pointer slice header
	nodeHeaderBytes int64 = 32 // kind, prev/next, slice headers
	slotBytes       int64 = 16 // one Int or one *Ref slot, reserved per NODE_SIZE capacity
	handleBytes     int64 = 24 // one Ref (target pointer, parent pointer, isRoot flag)
)

func nodeBytes(capacity int) int64 {
	return nodeHeaderBytes + int64(capacity)*slotBytes
}

// resolveIndex implements spec §4.B's index duality (P4): for a virtual
// sequence of n valid positions, positive indices 1..n and negative
// indices -n..-1 both resolve to the same zero-based position, with -1
// meaning the last one. Callers pass n = count for get/remove/replace,
// and n = count+1 for insert (whose valid range is 1..count+1 per §4.B).
func resolveIndex(op string, n, idx int64) (int64, error) {
	if idx >= 1 && idx <= n {
		return idx - 1, nil
	}
	if idx <= -1 && idx >= -n {
		return n + idx, nil
	}
	return 0, errs.NewBadIndex(op, "index out of range")
}

func checkType(op string, p *program.Program, t int32) error {
	min, max := p.TypeRange()
	if t < min || t > max {
		return errs.NewBadType(op, "type out of range")
	}
	return nil
}
