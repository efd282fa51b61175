// Package booleval implements the canonical boolean combinators and
// relational operators. Booleans are encoded as int16: True is -1, False
// is 0, and any value other than False is considered truthy.
package booleval

import "github.com/forthkit/goforth/internal/opcode"

// True and False are the canonical boolean encodings.
const (
	True  int16 = -1
	False int16 = 0
)

// Truthy reports whether v should be treated as true by If. Not uses the
// same rule for its operand; And and Or do not (see ExecBoolean).
func Truthy(v int16) bool {
	return v != False
}

// ExecBoolean evaluates a boolean combinator. For And and Or, both a and
// b are consulted, and only the literal True encoding counts as true
// (matching the combinators' own canonical-boolean convention rather than
// general truthiness). For Not, only a is consulted; b is ignored and may
// be zero.
func ExecBoolean(op opcode.BoolOp, a, b int16) int16 {
	switch op {
	case opcode.And:
		if a == True && b == True {
			return True
		}
		return False
	case opcode.Or:
		if a == True || b == True {
			return True
		}
		return False
	case opcode.Not:
		if a == False {
			return True
		}
		return False
	default:
		return False
	}
}

// ExecLogical evaluates a relational operator over two signed operands,
// returning the canonical True/False encoding.
func ExecLogical(op opcode.RelOp, a, b int16) int16 {
	var result bool
	switch op {
	case opcode.LessThan:
		result = a < b
	case opcode.GreaterThan:
		result = a > b
	case opcode.Equal:
		result = a == b
	}
	if result {
		return True
	}
	return False
}

// IsNot reports whether op is the unary Not combinator, which consumes
// one operand instead of two.
func IsNot(op opcode.BoolOp) bool {
	return op == opcode.Not
}
