package parser

import (
	"testing"

	"github.com/forthkit/goforth/internal/lexer"
	"github.com/forthkit/goforth/internal/opcode"
)

type fakeDict struct {
	defined map[string]bool
}

func (f *fakeDict) IsDefined(name string) bool {
	return f.defined[name]
}

func newFakeDict(names ...string) *fakeDict {
	d := &fakeDict{defined: map[string]bool{}}
	for _, n := range names {
		d.defined[n] = true
	}
	return d
}

func TestParseArithmetic(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{"1", "2", "3", "+"})
	want := []opcode.Instruction{
		{Kind: opcode.Number, Number: 1},
		{Kind: opcode.Number, Number: 2},
		{Kind: opcode.Number, Number: 3},
		{Kind: opcode.Operator, Operator: "+"},
	}
	assertInstructions(t, got, want)
}

func TestParseNegativeNumber(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{"-5"})
	want := []opcode.Instruction{{Kind: opcode.Number, Number: -5}}
	assertInstructions(t, got, want)
}

func TestParseStackWordSpellings(t *testing.T) {
	for _, spelling := range []string{"dup", "DUP", "Dup"} {
		p := New(newFakeDict())
		got := p.Parse(lexer.Tokenize(spelling))
		want := []opcode.Instruction{{Kind: opcode.StackWord, StackOp: opcode.Dup}}
		assertInstructions(t, got, want)
	}
}

func TestParseDefinition(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{":", "negate", "-1", "*", ";"})
	want := []opcode.Instruction{
		{Kind: opcode.StartDefinition},
		{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: "negate"},
		{Kind: opcode.Number, Number: -1},
		{Kind: opcode.Operator, Operator: "*"},
		{Kind: opcode.EndDefinition},
	}
	assertInstructions(t, got, want)
}

func TestParseShadowedOperator(t *testing.T) {
	p := New(newFakeDict("+"))
	got := p.Parse([]string{"+"})
	want := []opcode.Instruction{{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: "+"}}
	assertInstructions(t, got, want)
}

func TestParseShadowedStackWord(t *testing.T) {
	p := New(newFakeDict("dup"))
	got := p.Parse([]string{"dup"})
	want := []opcode.Instruction{{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: "dup"}}
	assertInstructions(t, got, want)
}

func TestParseIfElseThen(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{"if", "else", "then"})
	want := []opcode.Instruction{
		{Kind: opcode.DefinitionType, DefTag: opcode.If},
		{Kind: opcode.DefinitionType, DefTag: opcode.Else},
		{Kind: opcode.DefinitionType, DefTag: opcode.Then},
	}
	assertInstructions(t, got, want)
}

func TestParseQuotedLiteral(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{`." is not zero"`})
	want := []opcode.Instruction{
		{Kind: opcode.Output, OutOp: opcode.DotQuote, Text: "is not zero"},
	}
	assertInstructions(t, got, want)
}

func TestParseOutputWords(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{".", "emit", "cr"})
	want := []opcode.Instruction{
		{Kind: opcode.Output, OutOp: opcode.Dot},
		{Kind: opcode.Output, OutOp: opcode.Emit},
		{Kind: opcode.Output, OutOp: opcode.CR},
	}
	assertInstructions(t, got, want)
}

func TestParseUnknownWordBecomesName(t *testing.T) {
	p := New(newFakeDict())
	got := p.Parse([]string{"bar"})
	want := []opcode.Instruction{{Kind: opcode.DefinitionType, DefTag: opcode.Name, Name: "bar"}}
	assertInstructions(t, got, want)
}

func TestParseStackSize(t *testing.T) {
	n, err := ParseStackSize("stack-size=256")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 256 {
		t.Fatalf("ParseStackSize() = %d, want 256", n)
	}
}

func TestParseStackSizeInvalid(t *testing.T) {
	for _, bad := range []string{"stack-size=0", "stack-size=-1", "stack-size=abc", "nonsense"} {
		if _, err := ParseStackSize(bad); err == nil {
			t.Errorf("ParseStackSize(%q): expected error, got nil", bad)
		}
	}
}

func assertInstructions(t *testing.T, got, want []opcode.Instruction) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d instructions %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("instruction[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
