// Package source implements the multi-line unification pre-parser
// helper: consecutive lines that open a definition with ':' but don't
// close it with ';' on the same line are joined with single spaces into
// one logical line before tokenization.
//
// This is genuinely bespoke glue logic sitting between file I/O and the
// tokenizer — no library models "join lines until a textual delimiter
// balances", so it is implemented directly against the standard
// library, plain string/strings code.
package source

import "strings"

// Unify takes a sequence of raw source lines and returns logical lines:
// lines outside a definition are preserved verbatim, and lines that both
// open and close a definition on themselves are preserved as-is. A
// definition opened by ':' and not closed by ';' on the same line is
// concatenated with every following line, space-joined, until a ';' is
// seen.
func Unify(lines []string) []string {
	var out []string
	var pending []string
	open := false

	for _, line := range lines {
		if !open {
			if opensUnclosedDefinition(line) {
				open = true
				pending = []string{line}
				continue
			}
			out = append(out, line)
			continue
		}

		pending = append(pending, line)
		if strings.Contains(line, ";") {
			out = append(out, strings.Join(pending, " "))
			pending = nil
			open = false
		}
	}

	// An unterminated definition at EOF is passed through as-is; the
	// interpreter rejects it with InvalidWord for the missing ';'.
	if open {
		out = append(out, strings.Join(pending, " "))
	}

	return out
}

// opensUnclosedDefinition reports whether line contains a ':' that is not
// matched by a following ';' on the same line. It is a coarse textual
// check — deliberately so, since the real definition grammar (quoted
// literals, nested tokens) is the tokenizer's job, not this
// preprocessing step's. It looks only at the first ':' on the line and
// at whether any ';' follows it: a ':' or ';' inside a quoted literal
// counts like a delimiter, and a second definition left open after a
// closed one on the same line is not detected.
func opensUnclosedDefinition(line string) bool {
	colon := strings.Index(line, ":")
	if colon == -1 {
		return false
	}
	semicolon := strings.Index(line[colon:], ";")
	return semicolon == -1
}
