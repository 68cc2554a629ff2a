// Package parser consumes a lexer.Tokenizer's token stream and assembles a
// tree of commands and raw-text ranges.
package parser

import "github.com/opal-lang/markup/lexer"

// Command is one `\name(arg1, arg2){...}` invocation: a tree node.
type Command[T lexer.CodeUnit] struct {
	// Name covers the identifier after '\'. Empty for the synthetic root.
	Name lexer.Range[T]
	// Parameters is the ordered sequence of argument Ranges; no type
	// checking happens here, that is the executor's job (command.Prototype).
	Parameters []lexer.Range[T]
	Children   Sequence[T]
}

// Element is a sequence member: either a nested Command or a raw-text Range.
// Exactly one of Command or IsRaw is meaningful at a time.
type Element[T lexer.CodeUnit] struct {
	Command *Command[T]
	Raw     lexer.Range[T]
	IsRaw   bool
}

// Sequence is an ordered list of sequence elements (a Command's children,
// or the program's top-level elements).
type Sequence[T lexer.CodeUnit] []Element[T]

// NewRoot builds the synthetic root Command: empty name, empty parameters,
// with all top-level sequence elements as its children.
func NewRoot[T lexer.CodeUnit]() *Command[T] {
	return &Command[T]{}
}
