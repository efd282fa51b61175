// Command forth is the line-oriented interpreter's entry point: it reads
// a source file, feeds it through the tokenizer/parser/interpreter
// pipeline one logical line at a time, and snapshots the operand stack
// after every line.
package main

import (
	"fmt"
	"os"

	"github.com/forthkit/goforth/cmd/forth/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
