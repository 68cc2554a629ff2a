package builtin

import (
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
	"github.com/opal-lang/markup/parser"
)

func validationErrorNoParams[T lexer.CodeUnit](name string, cmd *parser.Command[T]) error {
	return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
		"command %q expects no parameters", name)
}
