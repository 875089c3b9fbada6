// Package trot is the public facade over Trot's embeddable data engine:
// a single recursive value, the Hoof list, built from bounded signed
// integers and references to other Hoof lists. Embedding programs import
// only this package; internal/* is never imported directly, mirroring
// how cmd/sentra is the sole consumer of the teacher's many internal
// packages.
package trot

import (
	"github.com/GeekHorse/Trot-sub001/internal/codec"
	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
	"github.com/GeekHorse/Trot-sub001/internal/intop"
	"github.com/GeekHorse/Trot-sub001/internal/program"
	"github.com/GeekHorse/Trot-sub001/internal/uconv"
)

// Re-exported types, so a caller never needs an internal/* import.
type (
	Program       = program.Program
	ProgramOption = program.Option
	List          = hooflist.List
	Ref           = hooflist.Ref
	Int           = hooflist.Int
	Kind          = hooflist.Kind
	CompareResult = hooflist.CompareResult
	Opcode        = intop.Opcode
	Error         = errs.Error
	ErrorKind     = errs.Kind
)

const (
	KindInt  = hooflist.KindInt
	KindList = hooflist.KindList
)

const (
	Less    = hooflist.Less
	Equal   = hooflist.Equal
	Greater = hooflist.Greater
)

const (
	OpAdd = intop.Add
	OpSub = intop.Sub
	OpMul = intop.Mul
	OpDiv = intop.Div
	OpMod = intop.Mod
	OpNeg = intop.Neg
	OpAnd = intop.And
	OpOr  = intop.Or
	OpNot = intop.Not
	OpLt  = intop.Lt
	OpGt  = intop.Gt
	OpEq  = intop.Eq
)

// Program construction (spec §4.A).
var (
	WithMemLimit    = program.WithMemLimit
	WithNodeSize    = program.WithNodeSize
	WithMaxChildren = program.WithMaxChildren
	WithTypeRange   = program.WithTypeRange
)

// NewProgram implements `init` for a Program: the memory-accounting
// context every list belongs to.
func NewProgram(opts ...ProgramOption) *Program {
	return program.New(opts...)
}

// Init implements the list `init` operation: a new empty list and its
// root handle.
func Init(p *Program) (*List, *Ref, error) {
	return hooflist.NewList(p)
}

// Twin implements `twin`: a new root handle sharing h's target.
func Twin(h *Ref) (*Ref, error) { return hooflist.Twin(h) }

// Drop implements `drop`: deregisters h and runs the reachability
// collector on its former target.
func Drop(h *Ref) error { return hooflist.Drop(h) }

// RefCompare implements `ref_compare`: identity, not structural, equality.
func RefCompare(a, b *Ref) bool { return hooflist.RefCompare(a, b) }

// Compare implements `compare`: the total structural ordering of §4.G.
func Compare(a, b *List) CompareResult { return hooflist.Compare(a, b) }

// Integer operator (spec §4.H).
func IntOperatorApply(l *List, op Opcode) error { return intop.Apply(l, op) }
func IntOperatorApplyValue(l *List, op Opcode, value Int) error {
	return intop.ApplyValue(l, op, value)
}

// Unicode conversion (spec §6).
func CharsToUtf8(p *Program, chars *List) (*List, *Ref, error) {
	return uconv.CharsToUtf8List(p, chars)
}
func Utf8ToChars(p *Program, bytes *List) (*List, *Ref, error) {
	return uconv.Utf8ToCharsList(p, bytes)
}
func IsWhitespace(c int32) bool { return uconv.IsWhitespace(c) }

// Text encode/decode (spec §6).
func Encode(p *Program, l *List) (*List, *Ref, error) { return codec.Encode(p, l) }
func Decode(p *Program, byteList *List) (*List, *Ref, error) {
	return codec.Decode(p, byteList)
}

// KindOf and IsKind let callers switch on an error's Kind without importing
// internal/errs (spec §7).
func KindOf(err error) (ErrorKind, bool) { return errs.KindOf(err) }
func IsKind(err error, kind ErrorKind) bool { return errs.Is(err, kind) }

const (
	ErrSuccess      = errs.Success
	ErrPrecondition = errs.Precondition
	ErrBadIndex     = errs.BadIndex
	ErrBadType      = errs.BadType
	ErrWrongKind    = errs.WrongKind
	ErrListOverflow = errs.ListOverflow
	ErrDivideByZero = errs.DivideByZero
	ErrInvalidOp    = errs.InvalidOp
	ErrMemLimit     = errs.MemLimit
	ErrAllocFail    = errs.AllocFail
	ErrUnicode      = errs.Unicode
	ErrDecode       = errs.Decode
)
