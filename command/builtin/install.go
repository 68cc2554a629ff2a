package builtin

import (
	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
)

// Install registers the always-present built-ins (the synthetic root, the
// named output-body command, comment, and unicode_codepoint) into reg,
// all writing to out. Embedders that need region-properties commands or
// runtime-defined replacements register those separately, since each needs
// caller-supplied state (a regions.Map and value function, or a macro
// pack) that Install has no opinion about.
func Install[T lexer.CodeUnit](reg *command.Registry[T], out *Sink) {
	reg.Register(NewRoot[T](out))
	reg.Register(NewOutputBody[T](out))
	reg.Register(Comment[T]{})
	reg.Register(NewUnicodeCodepoint[T](out))
}
