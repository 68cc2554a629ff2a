// Package builtin provides the reusable handler shapes spec.md's Command
// Definition Kit names: comment, output-body, unicode-codepoint,
// region-properties, and the runtime-defined replacement macro.
package builtin

import (
	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
)

// Comment is a no-op handler: it silently swallows its body. Grounded on
// command_definition::comment in commands_definitions.h.
type Comment[T lexer.CodeUnit] struct {
	command.Base[T]
}

func (Comment[T]) Name() string { return "comment" }

// ExecuteChildCommands is false so commands nested in a comment's body are
// never looked up or executed.
func (Comment[T]) ExecuteChildCommands() bool { return false }
