// Package calc implements the calculator: a pure function mapping two
// operands and an operator symbol to a result or an error.
package calc

import "github.com/forthkit/goforth/internal/langerr"

// Calc evaluates "a <op> b" for op in {+, -, *, /}. Division truncates
// toward zero, matching Go's integer division. A zero right-hand operand
// on "/" fails with DivisionByZero; any other operator symbol fails with
// UndefinedOperation.
//
// Arithmetic overflow is not checked: +, -, and * wrap around on 16-bit
// overflow, matching Go's default int16 arithmetic. The language has no
// way to construct a value outside int16 range in the first place, so
// wrapping is never observable except through deliberately overflowing
// arithmetic.
func Calc(a, b int16, op string) (int16, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, langerr.New(langerr.DivisionByZero, "")
		}
		return a / b, nil
	default:
		return 0, langerr.New(langerr.UndefinedOperation, op)
	}
}
