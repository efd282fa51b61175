// Package parser implements the stateful lexeme-to-Instruction converter.
// Parsing is dictionary-aware: because user definitions may shadow
// operators and stack words, the parser consults a Dictionary for those
// lexemes rather than classifying them in isolation.
package parser

import (
	"strconv"
	"strings"

	"github.com/forthkit/goforth/internal/langerr"
	"github.com/forthkit/goforth/internal/opcode"
)

// Dictionary is the subset of the word-definition manager the parser
// needs: whether a reserved name has been shadowed by a user word.
// Parsing takes this as an interface, rather than importing the
// dictionary package directly, to keep the parser ignorant of how
// bodies are compiled or executed (see internal/dictionary for that).
type Dictionary interface {
	IsDefined(name string) bool
}

// State is one of the parser's three modes.
type State int

const (
	OutsideDefinition State = iota
	ParsingWordName
	InsideDefinition
)

// Parser converts a lexeme sequence into Instructions, carrying its
// state across calls rather than treating parsing as a pure function.
type Parser struct {
	state State
	dict  Dictionary
}

// New creates a Parser that consults dict to decide whether a reserved
// name has been shadowed.
func New(dict Dictionary) *Parser {
	return &Parser{state: OutsideDefinition, dict: dict}
}

// Parse converts a lexeme sequence (typically one logical line, after
// internal/source.Unify) into an Instruction sequence.
func (p *Parser) Parse(lexemes []string) []opcode.Instruction {
	instrs := make([]opcode.Instruction, 0, len(lexemes))
	for _, lex := range lexemes {
		instrs = append(instrs, p.classify(lex))
	}
	return instrs
}

// classify applies the priority-ordered classification rules to a single
// lexeme.
func (p *Parser) classify(lex string) opcode.Instruction {
	switch lex {
	case ":":
		if p.state == OutsideDefinition {
			p.state = ParsingWordName
		}
		return opcode.Instruction{Kind: opcode.StartDefinition}
	case ";":
		if p.state == InsideDefinition {
			p.state = OutsideDefinition
		}
		return opcode.Instruction{Kind: opcode.EndDefinition}
	}

	if p.state == ParsingWordName {
		p.state = InsideDefinition
		return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: lex}
	}

	return p.classifyByContent(lex)
}

func (p *Parser) classifyByContent(lex string) opcode.Instruction {
	if n, ok := parseInteger(lex); ok {
		return opcode.Instruction{Kind: opcode.Number, Number: n}
	}

	switch lex {
	case "+", "-", "*", "/":
		if p.dict.IsDefined(lex) {
			return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: lex}
		}
		return opcode.Instruction{Kind: opcode.Operator, Operator: lex}
	case ".":
		return opcode.Instruction{Kind: opcode.Output, OutOp: opcode.Dot}
	case "emit":
		return opcode.Instruction{Kind: opcode.Output, OutOp: opcode.Emit}
	case "cr":
		return opcode.Instruction{Kind: opcode.Output, OutOp: opcode.CR}
	}

	if interior, ok := quotedLiteralInterior(lex); ok {
		return opcode.Instruction{Kind: opcode.Output, OutOp: opcode.DotQuote, Text: interior}
	}

	switch lex {
	case "<":
		return opcode.Instruction{Kind: opcode.LogicalOperation, RelOp: opcode.LessThan}
	case ">":
		return opcode.Instruction{Kind: opcode.LogicalOperation, RelOp: opcode.GreaterThan}
	case "=":
		return opcode.Instruction{Kind: opcode.LogicalOperation, RelOp: opcode.Equal}
	case "and":
		return opcode.Instruction{Kind: opcode.BooleanOperation, BoolOp: opcode.And}
	case "or":
		return opcode.Instruction{Kind: opcode.BooleanOperation, BoolOp: opcode.Or}
	case "not":
		return opcode.Instruction{Kind: opcode.BooleanOperation, BoolOp: opcode.Not}
	}

	if stackOp, ok := stackWordOp(lex); ok {
		if p.dict.IsDefined(lex) {
			return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: lex}
		}
		return opcode.Instruction{Kind: opcode.StackWord, StackOp: stackOp}
	}

	switch lex {
	case "if":
		return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.If}
	case "else":
		return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Else}
	case "then":
		return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Then}
	}

	return opcode.Instruction{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: lex}
}

func stackWordOp(lex string) (opcode.StackOp, bool) {
	switch lex {
	case "dup":
		return opcode.Dup, true
	case "drop":
		return opcode.Drop, true
	case "swap":
		return opcode.Swap, true
	case "over":
		return opcode.Over, true
	case "rot":
		return opcode.Rot, true
	}
	return 0, false
}

// parseInteger recognizes a literal integer: an optional leading '-'
// followed by one or more digits, and nothing else.
func parseInteger(lex string) (int16, bool) {
	if lex == "" || lex == "-" {
		return 0, false
	}
	body := lex
	if body[0] == '-' {
		body = body[1:]
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(lex, 10, 16)
	if err != nil {
		return 0, false
	}
	return int16(n), true
}

// quotedLiteralInterior extracts the text between the opening '." ' and
// the closing '"' of a quoted print literal lexeme, as produced by
// internal/lexer.
func quotedLiteralInterior(lex string) (string, bool) {
	const prefix = `." `
	if !strings.HasPrefix(lex, prefix) || !strings.HasSuffix(lex, `"`) || len(lex) < len(prefix)+1 {
		return "", false
	}
	return lex[len(prefix) : len(lex)-1], true
}

// ParseStackSize parses the CLI's optional "stack-size=N" argument. N
// must be a positive integer count of bytes.
func ParseStackSize(s string) (int, error) {
	const prefix = "stack-size="
	if !strings.HasPrefix(s, prefix) {
		return 0, langerr.New(langerr.InvalidStackSize, s)
	}
	n, err := strconv.Atoi(s[len(prefix):])
	if err != nil || n <= 0 {
		return 0, langerr.New(langerr.InvalidStackSize, s)
	}
	return n, nil
}
