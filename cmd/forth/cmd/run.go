package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/forthkit/goforth/internal/interp"
	"github.com/forthkit/goforth/internal/langerr"
	"github.com/forthkit/goforth/internal/lexer"
	"github.com/forthkit/goforth/internal/parser"
	"github.com/forthkit/goforth/internal/source"
	"github.com/forthkit/goforth/internal/stack"
	"github.com/spf13/cobra"
)

// runScript is the root command's RunE: it implements the CLI surface
// (positional file path, optional stack-size=N) plus the file-loop and
// stack-snapshot collaborators that sit outside the core interpreter.
func runScript(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return langerr.New(langerr.MissingPath, "")
	}
	path := args[0]

	capacityBytes := stack.DefaultCapacityBytes
	if len(args) == 2 {
		n, err := parser.ParseStackSize(args[1])
		if err != nil {
			// Invalid stack-size is reported but non-fatal: fall back to
			// the default and keep going.
			fmt.Fprintf(os.Stderr, "warning: %s, using default stack size\n", err)
		} else {
			capacityBytes = n
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	stackFile, err := os.Create(stackFileFlag)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", stackFileFlag, err)
	}
	defer stackFile.Close()

	interpreter := interp.New(capacityBytes, os.Stdout)
	p := parser.New(dictionaryView{interpreter})

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	for _, logical := range source.Unify(lines) {
		if strings.TrimSpace(logical) == "" {
			continue
		}

		lexemes := lexer.Tokenize(logical)
		instrs := p.Parse(lexemes)

		if dumpInstructionsFlag {
			for _, instr := range instrs {
				fmt.Fprintf(os.Stderr, "instr: %s\n", instr)
			}
		}
		if traceFlag {
			fmt.Fprintf(os.Stderr, "trace: %s\n", logical)
		}

		if procErr := interpreter.Process(instrs); procErr != nil {
			// Each line is an independent unit of work: report the
			// failure and continue with the next line.
			fmt.Fprintf(os.Stderr, "?  %s\n", procErr)
		}

		if err := appendStackSnapshot(stackFile, interpreter.Stack().Elements()); err != nil {
			return err
		}
	}

	return nil
}

// appendStackSnapshot writes the current stack contents, bottom first,
// top last, as a single space-separated decimal line.
func appendStackSnapshot(w *os.File, elements []int16) error {
	buf := bufio.NewWriter(w)
	for i, v := range elements {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.Itoa(int(v)))
	}
	buf.WriteByte('\n')
	return buf.Flush()
}

// dictionaryView adapts *interp.Interpreter to the parser.Dictionary
// interface without interp exporting its internal dictionary type.
type dictionaryView struct {
	in *interp.Interpreter
}

func (d dictionaryView) IsDefined(name string) bool {
	return d.in.IsDefined(name)
}
