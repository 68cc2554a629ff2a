package builtin

import (
	"strconv"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
	"github.com/opal-lang/markup/parser"
)

// UnicodeCodepoint implements `\unicode_codepoint(uHEX);`: exactly one
// parameter whose string begins with 'u' followed by a hexadecimal number;
// body must be empty. On OnBegin it decodes the hex into a scalar and
// appends its UTF-8 encoding to Out. Grounded on
// command_definition::unicode_codepoint in commands_definitions.h.
type UnicodeCodepoint[T lexer.CodeUnit] struct {
	command.Base[T]
	Out *Sink
}

func NewUnicodeCodepoint[T lexer.CodeUnit](out *Sink) *UnicodeCodepoint[T] {
	return &UnicodeCodepoint[T]{Out: out}
}

func (UnicodeCodepoint[T]) Name() string { return "unicode_codepoint" }

func (UnicodeCodepoint[T]) Descriptor() command.Descriptor {
	d, _ := command.NewDescriptor("unicode_codepoint").
		Summary("writes the UTF-8 encoding of a single hex codepoint parameter").
		Parameters(command.ParametersExact).
		Body(command.BodyAbsent).
		Build()
	return d
}

func (h UnicodeCodepoint[T]) Validate(cmd *parser.Command[T]) error {
	fail := func() error {
		return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
			`command "unicode_codepoint" expects a single "uHEX" parameter and no body, e.g. \unicode_codepoint(u1F604);`)
	}
	if len(cmd.Parameters) != 1 || len(cmd.Children) != 0 {
		return fail()
	}
	text := cmd.Parameters[0].String()
	if len(text) == 0 || text[0] != 'u' {
		return fail()
	}
	if _, err := strconv.ParseUint(text[1:], 16, 32); err != nil {
		return fail()
	}
	return nil
}

func (h UnicodeCodepoint[T]) OnBegin(cmd *parser.Command[T]) error {
	text := cmd.Parameters[0].String()
	value, err := strconv.ParseUint(text[1:], 16, 32)
	if err != nil {
		return markuperr.Wrap(markuperr.RuntimeError, cmd.Name.Begin.Diagnostic(), err,
			"command %q: invalid hex codepoint %q", "unicode_codepoint", text)
	}
	if h.Out != nil {
		h.Out.WriteRune(rune(value))
	}
	return nil
}
