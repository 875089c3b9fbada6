// Package intop implements Trot's integer operator (spec §4.H): ADD, SUB,
// MUL, DIV, MOD, NEG, AND, OR, NOT operate in place on the trailing int(s)
// of a list; LT, GT, EQ are comparison opcodes added on top of the
// original nine-opcode set. Grounded on trotListInt.c's split between a
// two-int form (pop the last value, combine with the new last value) and
// a one-int form (combine the last value with a caller-supplied value),
// preserved here as Apply and ApplyValue.
package intop

import (
	"github.com/GeekHorse/Trot-sub001/internal/errs"
	"github.com/GeekHorse/Trot-sub001/internal/hooflist"
)

// Opcode enumerates the integer operator's opcodes (spec §4.H). Values
// outside [OpMin, OpMax] are invalid-op.
type Opcode int

const (
	Add Opcode = iota + 1
	Sub
	Mul
	Div
	Mod
	Neg
	And
	Or
	Not
	Lt
	Gt
	Eq
)

const (
	OpMin = Add
	OpMax = Eq
)

func (op Opcode) unary() bool {
	return op == Neg || op == Not
}

func validOp(op Opcode) bool {
	return op >= OpMin && op <= OpMax
}

// Apply implements the two-int form (original trotListIntOperand): for a
// binary opcode, the list's last int is popped and combined with the new
// last int; for a unary opcode, only the last int is touched. The list is
// left unchanged on any error.
func Apply(l *hooflist.List, op Opcode) error {
	const opName = "IntOperatorApply"
	if !validOp(op) {
		return errs.NewInvalidOp(opName, "opcode outside ADD..EQ")
	}
	n := l.Count()
	if n < 1 {
		return errs.NewWrongKind(opName, "list has no trailing int")
	}
	if k, err := l.GetKind(-1); err != nil {
		return err
	} else if k != hooflist.KindInt {
		return errs.NewWrongKind(opName, "last child is not an int")
	}

	if op.unary() {
		return ApplyValue(l, op, 0)
	}

	if n < 2 {
		return errs.NewWrongKind(opName, "list has fewer than two trailing ints")
	}
	if k, err := l.GetKind(-2); err != nil {
		return err
	} else if k != hooflist.KindInt {
		return errs.NewWrongKind(opName, "second-to-last child is not an int")
	}

	// Pop the last int first, then combine it with the new last int
	// (formerly second-to-last), matching trotListIntOperand's order.
	value, err := l.RemoveInt(-1)
	if err != nil {
		return err
	}
	if err := ApplyValue(l, op, value); err != nil {
		l.AppendInt(value)
		return err
	}
	return nil
}

// ApplyValue implements the one-int form (original trotListIntOperandValue):
// combines the list's last int with value in place. Division and modulo
// by zero fail divide-by-zero without touching the list.
func ApplyValue(l *hooflist.List, op Opcode, value hooflist.Int) error {
	const opName = "IntOperatorApplyValue"
	if !validOp(op) {
		return errs.NewInvalidOp(opName, "opcode outside ADD..EQ")
	}
	if l.Count() < 1 {
		return errs.NewWrongKind(opName, "list has no trailing int")
	}
	last, err := l.GetInt(-1)
	if err != nil {
		return err
	}

	if (op == Div || op == Mod) && value == 0 {
		return errs.NewDivideByZero(opName, "division or modulo by zero")
	}

	var result hooflist.Int
	switch op {
	case Add:
		result = last + value
	case Sub:
		result = last - value
	case Mul:
		result = last * value
	case Div:
		result = last / value
	case Mod:
		result = last % value
	case Neg:
		result = -last
	case And:
		result = boolInt(last != 0 && value != 0)
	case Or:
		result = boolInt(last != 0 || value != 0)
	case Not:
		result = boolInt(last == 0)
	case Lt:
		result = boolInt(last < value)
	case Gt:
		result = boolInt(last > value)
	case Eq:
		result = boolInt(last == value)
	}

	return l.ReplaceWithInt(-1, result)
}

func boolInt(b bool) hooflist.Int {
	if b {
		return 1
	}
	return 0
}
