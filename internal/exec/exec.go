// Package exec implements the execution handler: dispatch of a single
// non-definitional opcode against the operand stack, the calculator, the
// boolean evaluator, and the output writer.
package exec

import (
	"fmt"
	"io"

	"github.com/forthkit/goforth/internal/booleval"
	"github.com/forthkit/goforth/internal/calc"
	"github.com/forthkit/goforth/internal/langerr"
	"github.com/forthkit/goforth/internal/opcode"
	"github.com/forthkit/goforth/internal/stack"
)

// Handler dispatches WordData opcodes against a Stack and an optional
// output Writer. A nil Writer makes every Output opcode a silent no-op.
type Handler struct {
	stack *stack.Stack
	out   io.Writer
}

// New creates a Handler bound to st, writing output (if any) to out.
func New(st *stack.Stack, out io.Writer) *Handler {
	return &Handler{stack: st, out: out}
}

// Execute dispatches a single opcode. It must not be called with Kind ==
// StartDefinition, EndDefinition, DefinitionType, or DefinitionIndex —
// those are handled by internal/interp and internal/dictionary
// respectively, never by the ExecutionHandler.
func (h *Handler) Execute(op opcode.WordData) error {
	switch op.Kind {
	case opcode.Number:
		return h.stack.Push(op.Number)

	case opcode.Operator:
		b, err := h.stack.Drop()
		if err != nil {
			return err
		}
		a, err := h.stack.Drop()
		if err != nil {
			return err
		}
		result, err := calc.Calc(a, b, op.Operator)
		if err != nil {
			return err
		}
		return h.stack.Push(result)

	case opcode.StackWord:
		return h.execStackWord(op.StackOp)

	case opcode.BooleanOperation:
		a, err := h.stack.Drop()
		if err != nil {
			return err
		}
		var b int16
		if !booleval.IsNot(op.BoolOp) {
			b, err = h.stack.Drop()
			if err != nil {
				return err
			}
		}
		return h.stack.Push(booleval.ExecBoolean(op.BoolOp, a, b))

	case opcode.LogicalOperation:
		b, err := h.stack.Drop()
		if err != nil {
			return err
		}
		a, err := h.stack.Drop()
		if err != nil {
			return err
		}
		return h.stack.Push(booleval.ExecLogical(op.RelOp, a, b))

	case opcode.Output:
		return h.execOutput(op)

	default:
		return langerr.New(langerr.InvalidWord, "opcode not executable")
	}
}

func (h *Handler) execStackWord(op opcode.StackOp) error {
	switch op {
	case opcode.Dup:
		return h.stack.Dup()
	case opcode.Drop:
		_, err := h.stack.Drop()
		return err
	case opcode.Swap:
		return h.stack.Swap()
	case opcode.Over:
		return h.stack.Over()
	case opcode.Rot:
		return h.stack.Rot()
	default:
		return langerr.New(langerr.InvalidWord, "unknown stack word")
	}
}

// flusher is implemented by writers that buffer output (e.g.
// bufio.Writer); execOutput flushes after every write so that abnormal
// termination leaves observable progress.
type flusher interface {
	Flush() error
}

// execOutput dispatches the output opcodes. All of them are silent
// no-ops when no writer is configured, and a stack underflow while
// popping an operand for Dot/Emit is absorbed rather than propagated:
// the opcode simply does nothing observable.
func (h *Handler) execOutput(op opcode.WordData) error {
	if h.out == nil {
		return nil
	}

	switch op.OutOp {
	case opcode.Dot:
		v, ok, err := h.popAbsorbingUnderflow()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fmt.Fprintf(h.out, "%d ", v)

	case opcode.CR:
		fmt.Fprintln(h.out)

	case opcode.Emit:
		v, ok, err := h.popAbsorbingUnderflow()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if v < 0 || v > 255 {
			return nil
		}
		fmt.Fprintf(h.out, "%c ", byte(v))

	case opcode.DotQuote:
		fmt.Fprintf(h.out, "%s ", op.Text)
	}

	if f, ok := h.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// popAbsorbingUnderflow pops the stack, treating Underflow as "nothing to
// report" rather than an error, matching the output opcodes' absorption
// rule.
func (h *Handler) popAbsorbingUnderflow() (int16, bool, error) {
	v, err := h.stack.Drop()
	if err == nil {
		return v, true, nil
	}
	if langerr.Is(err, langerr.Underflow) {
		return 0, false, nil
	}
	return 0, false, err
}
