// Package interp implements the top-level interpreter: the orchestrator
// that walks a line's parsed Instructions, carves out word definitions
// and hands them to internal/dictionary, and delegates everything else
// to internal/exec.
package interp

import (
	"io"

	"github.com/forthkit/goforth/internal/dictionary"
	"github.com/forthkit/goforth/internal/exec"
	"github.com/forthkit/goforth/internal/langerr"
	"github.com/forthkit/goforth/internal/opcode"
	"github.com/forthkit/goforth/internal/stack"
)

// Interpreter owns the dictionary, the operand stack, and the execution
// handler, and drives them across successive lines of input.
type Interpreter struct {
	dict    *dictionary.Dictionary
	stack   *stack.Stack
	handler *exec.Handler
}

// New creates an Interpreter with a fresh dictionary and a stack of the
// given capacity in bytes, writing output (if any) to out.
func New(capacityBytes int, out io.Writer) *Interpreter {
	st := stack.New(capacityBytes)
	return &Interpreter{
		dict:    dictionary.New(),
		stack:   st,
		handler: exec.New(st, out),
	}
}

// Stack exposes the operand stack for snapshotting.
func (in *Interpreter) Stack() *stack.Stack {
	return in.stack
}

// IsDefined reports whether name is currently bound in the dictionary.
// It lets a caller's parser.Dictionary adapter consult the Interpreter's
// dictionary for shadow checks without this package exporting its
// internal dictionary type.
func (in *Interpreter) IsDefined(name string) bool {
	return in.dict.IsDefined(name)
}

// Process runs one line's worth of parsed Instructions to completion.
func (in *Interpreter) Process(instrs []opcode.Instruction) error {
	i := 0
	for i < len(instrs) {
		instr := instrs[i]

		switch instr.Kind {
		case opcode.StartDefinition:
			consumed, err := in.ingestDefinition(instrs[i:])
			if err != nil {
				return err
			}
			i += consumed

		case opcode.EndDefinition:
			return langerr.New(langerr.InvalidWord, "stray ; outside a definition")

		case opcode.DefinitionType:
			switch instr.DefTag {
			case opcode.Name:
				if err := in.dict.Execute(instr.Name, in.stack, in.handler); err != nil {
					return err
				}
			default:
				// If / Else / Then at top level have no effect.
			}
			i++

		default:
			if err := in.handler.Execute(opcode.ToWordData(instr)); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// ingestDefinition consumes a StartDefinition ... EndDefinition run
// starting at instrs[0] and hands the enclosed body to the dictionary. It
// returns how many Instructions were consumed so the caller can advance
// past the whole definition.
func (in *Interpreter) ingestDefinition(instrs []opcode.Instruction) (int, error) {
	if len(instrs) < 2 || instrs[1].Kind != opcode.DefinitionType || instrs[1].DefTag != opcode.Name {
		return 0, langerr.New(langerr.InvalidWord, "definition missing a name")
	}
	name := instrs[1].Name

	end := -1
	for i := 2; i < len(instrs); i++ {
		if instrs[i].Kind == opcode.EndDefinition {
			end = i
			break
		}
	}
	if end == -1 {
		return 0, langerr.New(langerr.InvalidWord, "definition missing ;")
	}

	body := instrs[2:end]
	if err := in.dict.Define(name, body); err != nil {
		return 0, err
	}
	return end + 1, nil
}
