package builtin

import (
	"strings"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

// Sink is the output buffer handlers append to: a growable string, owned
// externally, referenced non-owningly. A nil *strings.Builder is valid —
// emitters become no-ops but lifecycle hooks still fire (spec.md §3).
type Sink = strings.Builder

// appendBody appends raw-text children to Out in document order; Command
// children are left to recurse and print their own raw text, matching
// output_body_base::on_child in the original source. It carries no
// parameter/body validation of its own — that is layered on by the
// concrete commands that need it (Root, OutputBody) — matching how
// region_properties extends output_body_base directly, without the
// no-parameters restriction output_body and output_body_root add.
//
// Out may be of a different code-unit type than the input being parsed —
// here the output is always Go's native UTF-8 string, regardless of the
// input instantiation (byte, uint16, or rune), which is itself an instance
// of spec.md §6's "handlers may write to an output buffer of a different
// character type than the input".
type appendBody[T lexer.CodeUnit] struct {
	command.Base[T]
	Out *Sink
}

func (h appendBody[T]) OnChildRaw(_ *parser.Command[T], child lexer.Range[T]) error {
	if h.Out != nil {
		h.Out.WriteString(child.String())
	}
	return nil
}

// outputBody additionally forbids parameters, matching output_body and
// output_body_root in the original source.
type outputBody[T lexer.CodeUnit] struct {
	appendBody[T]
}

func (h outputBody[T]) Validate(cmd *parser.Command[T]) error {
	name := cmd.Name.String()
	if name == "" {
		name = "root"
	}
	if len(cmd.Parameters) != 0 {
		return validationErrorNoParams(name, cmd)
	}
	return nil
}

// Root is the synthetic root's handler: it must be registered under the
// empty name, matching output_body_root in the original source.
type Root[T lexer.CodeUnit] struct {
	outputBody[T]
}

func NewRoot[T lexer.CodeUnit](out *Sink) *Root[T] {
	return &Root[T]{outputBody[T]{appendBody[T]{Out: out}}}
}

func (Root[T]) Name() string { return "" }

// OutputBody is the named `\output_body{...}` command: identical behavior
// to Root, usable inside a macro expansion. Grounded on the original
// source's distinct output_body command definition.
type OutputBody[T lexer.CodeUnit] struct {
	outputBody[T]
}

func NewOutputBody[T lexer.CodeUnit](out *Sink) *OutputBody[T] {
	return &OutputBody[T]{outputBody[T]{appendBody[T]{Out: out}}}
}

func (OutputBody[T]) Name() string { return "output_body" }
