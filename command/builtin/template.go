package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
	"github.com/opal-lang/markup/parser"
)

// hole is one `\#N` substitution site in a replacement template: the
// call-site parameter index it refers to, plus the byte span of the
// `\#N` escape within the template. Holes are kept sorted by Begin
// ascending and are non-overlapping (invariant I5).
type hole struct {
	parameterIndex int
	begin, end     int
}

// Template is an immutable replacement string plus its parsed holes, used
// by the runtime-defined replacement macro to generate concrete pre/post
// body strings at call time. Grounded on replacement_piece in
// commands_definitions.h.
type Template struct {
	Prototype              string
	holes                  []hole
	RequiredParameterCount int
}

// ParseTemplate scans prototype for `\#N` escapes and records one hole per
// occurrence, raising a ParseError if `\#` is not followed by a decimal
// integer. commandName is used only for diagnostic messages.
func ParseTemplate(commandName, prototype string) (*Template, error) {
	tok := lexer.NewBytes([]byte(prototype))
	pos := tok.Begin()
	var holes []hole
	required := 0

	for pos.Offset < tok.End().Offset {
		cp := tok.NextCodepoint(pos)
		if cp.Codepoint != '\\' {
			pos = cp.Range.End
			continue
		}
		second := tok.NextCodepoint(cp.Range.End)
		if second.Codepoint != '#' {
			pos = cp.Range.End
			continue
		}
		numberRange := tok.NextNumber(second.Range.End)
		if numberRange.Empty() {
			return nil, markuperr.New(markuperr.ParseError, cp.Range.Begin.Diagnostic(),
				`malformed replacement template for command %q: "\#" must be followed by a decimal integer`, commandName)
		}
		index, err := strconv.Atoi(numberRange.String())
		if err != nil {
			return nil, markuperr.Wrap(markuperr.ParseError, cp.Range.Begin.Diagnostic(), err,
				`malformed replacement template for command %q: invalid hole index`, commandName)
		}
		holes = append(holes, hole{parameterIndex: index, begin: cp.Range.Begin.Offset, end: numberRange.End.Offset})
		if index+1 > required {
			required = index + 1
		}
		pos = numberRange.End
	}

	return &Template{Prototype: prototype, holes: holes, RequiredParameterCount: required}, nil
}

func paramString[T lexer.CodeUnit](params []lexer.Range[T], index int) string {
	if index < 0 || index >= len(params) {
		return ""
	}
	return params[index].String()
}

// GenerateFrom substitutes holes using a generic Command's parameters
// (any CodeUnit instantiation), for use by the replacement handler which
// is itself generic over the call-site input's code-unit type.
func GenerateFrom[T lexer.CodeUnit](t *Template, cmd *parser.Command[T]) string {
	var out strings.Builder
	cursor := 0
	for _, h := range t.holes {
		out.WriteString(t.Prototype[cursor:h.begin])
		out.WriteString(paramString(cmd.Parameters, h.parameterIndex))
		cursor = h.end
	}
	out.WriteString(t.Prototype[cursor:])
	return out.String()
}

func (t *Template) String() string {
	return fmt.Sprintf("Template(%q, holes=%d, required=%d)", t.Prototype, len(t.holes), t.RequiredParameterCount)
}
