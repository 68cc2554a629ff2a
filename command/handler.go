package command

import (
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

// Handler is the capability set a command definition may provide: the
// uniform lifecycle the Executor drives for every node (validate → on_begin
// → (for each child: on_child and optionally recurse) → on_end).
//
// Handlers are owned by the embedding application; the Registry holds only
// references (spec.md §3, Handler registry).
type Handler[T lexer.CodeUnit] interface {
	// Name is the identifier this handler is registered under. The
	// synthetic root handler returns "".
	Name() string

	// Validate verifies cmd's parameters and body against this handler's
	// prototype, returning a ValidationError on mismatch.
	Validate(cmd *parser.Command[T]) error

	// OnBegin is the pre-order hook.
	OnBegin(cmd *parser.Command[T]) error

	// OnChildCommand and OnChildRaw are the per-child hooks, dispatched on
	// the child element's variant.
	OnChildCommand(cmd *parser.Command[T], child *parser.Command[T]) error
	OnChildRaw(cmd *parser.Command[T], child lexer.Range[T]) error

	// OnEnd is the post-order hook.
	OnEnd(cmd *parser.Command[T]) error

	// ExecuteChildCommands reports whether the Executor should recurse into
	// each child Command after OnChildCommand fires. Handlers that drive
	// their own nested execution (the runtime-defined replacement) return
	// false so the outer executor does not also recurse into already
	// spliced-and-consumed children.
	ExecuteChildCommands() bool
}

// Describable is implemented by handlers that expose a Descriptor for
// tooling (docs, CLI introspection, stale-macro-pack detection). Not every
// handler needs one — simple built-ins like Comment are self-explanatory —
// so it is a separate, optional interface rather than part of Handler.
type Describable interface {
	Descriptor() Descriptor
}

// Base provides no-op implementations of every Handler hook so concrete
// handlers only need to override what they use, the way the original
// source's command_definition::base gives every hook a default empty body.
type Base[T lexer.CodeUnit] struct{}

func (Base[T]) Validate(*parser.Command[T]) error                          { return nil }
func (Base[T]) OnBegin(*parser.Command[T]) error                           { return nil }
func (Base[T]) OnChildCommand(*parser.Command[T], *parser.Command[T]) error { return nil }
func (Base[T]) OnChildRaw(*parser.Command[T], lexer.Range[T]) error        { return nil }
func (Base[T]) OnEnd(*parser.Command[T]) error                             { return nil }
func (Base[T]) ExecuteChildCommands() bool                                 { return true }
