// Package dictionary implements the word-definition manager: an
// append-only store of compiled word bodies, the compiler that turns a
// parsed body into WordData, and the executor that walks a compiled
// body — including nested If/Else/Then control flow — against the
// operand stack.
package dictionary

import (
	"strconv"
	"unicode"

	"github.com/forthkit/goforth/internal/booleval"
	"github.com/forthkit/goforth/internal/exec"
	"github.com/forthkit/goforth/internal/langerr"
	"github.com/forthkit/goforth/internal/opcode"
	"github.com/forthkit/goforth/internal/stack"
)

// Dictionary maps word names to an index into an append-only vector of
// compiled bodies. Redefining a name appends a new body and remaps the
// name; it never mutates or removes an existing body, so any word that
// already captured the old index as a DefinitionIndex keeps calling it
// (the "frozen callee" property).
type Dictionary struct {
	names       map[string]int
	definitions [][]opcode.WordData
}

// New creates an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{names: make(map[string]int)}
}

// IsDefined reports whether name is currently bound to a body. It
// satisfies the parser.Dictionary interface.
func (d *Dictionary) IsDefined(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Define compiles body and binds name to the resulting body.
func (d *Dictionary) Define(name string, body []opcode.Instruction) error {
	if err := validateName(name); err != nil {
		return err
	}

	compiled := make([]opcode.WordData, 0, len(body))
	for _, instr := range body {
		switch instr.Kind {
		case opcode.Number, opcode.Operator, opcode.StackWord,
			opcode.BooleanOperation, opcode.LogicalOperation, opcode.Output:
			compiled = append(compiled, opcode.ToWordData(instr))

		case opcode.DefinitionType:
			if instr.DefTag != opcode.Name {
				// If / Else / Then: copied through as control markers.
				compiled = append(compiled, opcode.ToWordData(instr))
				continue
			}
			if idx, ok := d.names[instr.Name]; ok {
				compiled = append(compiled, opcode.WordData{Kind: opcode.DefinitionIndex, Index: idx})
			}
			// Unresolved at compile time: the reference is silently dropped.

		default:
			// StartDefinition, EndDefinition, or anything else that has no
			// business inside a compiled body.
			return langerr.New(langerr.InvalidWord, "illegal opcode inside word body")
		}
	}

	d.definitions = append(d.definitions, compiled)
	d.names[name] = len(d.definitions) - 1
	return nil
}

// validateName enforces the naming rule: the name must not parse as an
// integer, and every character must be alphanumeric or ASCII
// punctuation/symbol (tokenization has already lower-cased it).
func validateName(name string) error {
	if name == "" {
		return langerr.New(langerr.InvalidWord, "empty word name")
	}
	if _, err := strconv.ParseInt(name, 10, 64); err == nil {
		return langerr.New(langerr.InvalidWord, "word name cannot be an integer: "+name)
	}
	for _, r := range name {
		if r > unicode.MaxASCII {
			return langerr.New(langerr.InvalidWord, "word name must be ASCII: "+name)
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		return langerr.New(langerr.InvalidWord, "illegal character in word name: "+name)
	}
	return nil
}

// Execute runs the word named name to completion against st, delegating
// non-control opcodes to h. It maintains an invocation stack: running a
// body to completion may queue further names (the vestigial case where a
// DefinitionType(Name) opcode survives into a compiled body — in
// practice this compiler never produces one, since Define drops
// unresolved names outright, but the dispatch is kept to tolerate any
// future compiler that stops dropping them).
func (d *Dictionary) Execute(name string, st *stack.Stack, h *exec.Handler) error {
	invocation := []string{name}
	for len(invocation) > 0 {
		n := invocation[len(invocation)-1]
		invocation = invocation[:len(invocation)-1]

		idx, ok := d.names[n]
		if !ok {
			return langerr.New(langerr.UnknownWord, n)
		}

		if err := d.execRange(d.definitions[idx], 0, len(d.definitions[idx]), st, h, &invocation); err != nil {
			return err
		}
	}
	return nil
}

// execIndex recursively executes the body at idx from its start. This is
// how a frozen DefinitionIndex reference and recursive calls to an
// already-compiled body are invoked.
func (d *Dictionary) execIndex(idx int, st *stack.Stack, h *exec.Handler, invocation *[]string) error {
	if idx < 0 || idx >= len(d.definitions) {
		return langerr.New(langerr.InvalidWord, "dangling definition index")
	}
	body := d.definitions[idx]
	return d.execRange(body, 0, len(body), st, h, invocation)
}

// execRange walks body[start:end] in order, recursing into If/Else
// branches as needed. A stray DefinitionType(Name) is appended to
// invocation for the enclosing Execute loop to process once the current
// body finishes, rather than being called inline.
func (d *Dictionary) execRange(body []opcode.WordData, start, end int, st *stack.Stack, h *exec.Handler, invocation *[]string) error {
	i := start
	for i < end {
		instr := body[i]

		switch instr.Kind {
		case opcode.DefinitionIndex:
			if err := d.execIndex(instr.Index, st, h, invocation); err != nil {
				return err
			}
			i++

		case opcode.DefinitionType:
			switch instr.DefTag {
			case opcode.Name:
				*invocation = append(*invocation, instr.Name)
				i++

			case opcode.If:
				elseIdx, thenIdx, err := findElseThen(body, i+1)
				if err != nil {
					return err
				}

				v, err := st.Drop()
				if err != nil {
					return err
				}

				thenBranchEnd := thenIdx
				if elseIdx != -1 {
					thenBranchEnd = elseIdx
				}

				if booleval.Truthy(v) {
					if err := d.execRange(body, i+1, thenBranchEnd, st, h, invocation); err != nil {
						return err
					}
				} else if elseIdx != -1 {
					if err := d.execRange(body, elseIdx+1, thenIdx, st, h, invocation); err != nil {
						return err
					}
				}

				i = thenIdx + 1

			default:
				// A bare Else/Then not consumed by a preceding If at this
				// level is just a marker inside a well-formed If;
				// treat as a no-op fall-through.
				i++
			}

		default:
			if err := h.Execute(instr); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// findElseThen scans body forward from "from", tracking nesting depth, to
// locate the Then matching the If that triggered this scan (and, if
// present, the Else at the same depth before it). Returns elseIdx == -1
// if there is no Else branch.
func findElseThen(body []opcode.WordData, from int) (elseIdx, thenIdx int, err error) {
	depth := 0
	elseIdx = -1

	for i := from; i < len(body); i++ {
		if body[i].Kind != opcode.DefinitionType {
			continue
		}
		switch body[i].DefTag {
		case opcode.If:
			depth++
		case opcode.Then:
			if depth == 0 {
				return elseIdx, i, nil
			}
			depth--
		case opcode.Else:
			if depth == 0 && elseIdx == -1 {
				elseIdx = i
			}
		}
	}

	return -1, -1, langerr.New(langerr.InvalidWord, "if without matching then")
}
