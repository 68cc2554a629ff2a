package parser

import (
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
)

// TreeParser consumes a tokenizer's token stream and assembles a parse tree.
// It maintains a stack of "the sequence currently being appended to" so that
// `{ ... }` opens and closes nest correctly (invariant I3: the stack never
// drops below size 1).
type TreeParser[T lexer.CodeUnit] struct {
	Root  *Command[T]
	stack []*Sequence[T]
}

// New creates a TreeParser whose stack is initialized with the root's
// children sequence.
func New[T lexer.CodeUnit]() *TreeParser[T] {
	p := &TreeParser[T]{Root: NewRoot[T]()}
	p.stack = append(p.stack, &p.Root.Children)
	return p
}

// ParseAll loops until end-of-input, calling step. When it returns
// successfully the stack has returned to size 1 (P3 — stack balance); a
// ParseError diagnostic is returned instead if a `{` was left unclosed,
// which spec.md's open questions leave as an implementation decision — this
// implementation reports it rather than silently accepting the incomplete
// tree.
func (p *TreeParser[T]) ParseAll(tok *lexer.Tokenizer[T]) error {
	pos := tok.Begin()
	end := tok.End()
	for pos.Offset < end.Offset {
		next, err := p.step(tok, pos)
		if err != nil {
			return err
		}
		pos = next
	}
	if len(p.stack) != 1 {
		top := tok.NextCodepoint(pos)
		return markuperr.New(markuperr.ParseError, top.Range.Begin.Diagnostic(),
			"unclosed body: %d '{' opened without a matching '}'", len(p.stack)-1)
	}
	return nil
}

func (p *TreeParser[T]) top() *Sequence[T] {
	return p.stack[len(p.stack)-1]
}

// ParseStream runs step over tok to completion without checking the final
// stack balance, so the same TreeParser can be driven across more than one
// tokenizer while an opened '{' from one stream stays open into the next —
// the mechanism the runtime-defined replacement macro uses to splice a
// command's original children into a generated "before body" prototype
// before closing it with a generated "after body" prototype. Grounded on
// tree_parser::parse_all in the original source, which likewise never
// checks stack size; the balance check in ParseAll is this implementation's
// addition for top-level document parsing only.
func (p *TreeParser[T]) ParseStream(tok *lexer.Tokenizer[T]) error {
	pos := tok.Begin()
	end := tok.End()
	for pos.Offset < end.Offset {
		next, err := p.step(tok, pos)
		if err != nil {
			return err
		}
		pos = next
	}
	return nil
}

// SpliceChildren appends children to the sequence currently open on top of
// the stack (the Sequence a '{' most recently opened, or the root's
// children if nothing is open).
func (p *TreeParser[T]) SpliceChildren(children Sequence[T]) {
	*p.top() = append(*p.top(), children...)
}

func (p *TreeParser[T]) step(tok *lexer.Tokenizer[T], pos lexer.Position) (lexer.Position, error) {
	first := tok.NextCodepoint(pos)
	switch first.Codepoint {
	case '}':
		if len(p.stack) <= 1 {
			return pos, markuperr.New(markuperr.ParseError, pos.Diagnostic(),
				"unmatched '}': curly bracket closed without a matching opening")
		}
		p.stack = p.stack[:len(p.stack)-1]
		return first.Range.End, nil
	case '\\':
		return p.stepCommand(tok, first.Range.End)
	default:
		return p.stepRaw(tok, pos)
	}
}

// stepRaw consumes the longest Range up to but not including the next '}'
// or '\\', appending it as a raw-text element to the top-of-stack sequence.
func (p *TreeParser[T]) stepRaw(tok *lexer.Tokenizer[T], pos lexer.Position) (lexer.Position, error) {
	end := pos
	for end.Offset < tok.End().Offset {
		cpr := tok.NextCodepoint(end)
		if cpr.Codepoint == '}' || cpr.Codepoint == '\\' {
			break
		}
		end = cpr.Range.End
	}
	rawRange := tok.RangeBetween(pos, end)
	if !rawRange.Empty() {
		*p.top() = append(*p.top(), Element[T]{Raw: rawRange, IsRaw: true})
	}
	return end, nil
}

// stepCommand is entered just past the '\\' that introduces a command.
func (p *TreeParser[T]) stepCommand(tok *lexer.Tokenizer[T], pos lexer.Position) (lexer.Position, error) {
	name := tok.NextIdentifier(pos)
	if name.Empty() {
		return pos, markuperr.New(markuperr.ParseError, pos.Diagnostic(),
			`empty command: '\' must be followed by a valid identifier`)
	}

	cmd := &Command[T]{Name: name}
	*p.top() = append(*p.top(), Element[T]{Command: cmd})

	next := tok.NextCodepoint(name.End)
	if next.Codepoint == '(' {
		end, err := p.stepParameters(tok, next.Range.End, cmd)
		if err != nil {
			return pos, err
		}
		next = tok.NextCodepoint(end)
	}

	switch next.Codepoint {
	case '{':
		p.stack = append(p.stack, &cmd.Children)
		return next.Range.End, nil
	case ';':
		return next.Range.End, nil
	default:
		return pos, markuperr.New(markuperr.ParseError, pos.Diagnostic(),
			`invalid command termination: expected ';' or '{' after \%s`, name.String())
	}
}

// nextParameter scans one parameter: an identifier, or — if that's empty —
// a number. At least one must match.
func (p *TreeParser[T]) nextParameter(tok *lexer.Tokenizer[T], pos lexer.Position) (lexer.Range[T], error) {
	ident := tok.NextIdentifier(pos)
	if !ident.Empty() {
		return ident, nil
	}
	num := tok.NextNumber(pos)
	if !num.Empty() {
		return num, nil
	}
	return num, markuperr.New(markuperr.ParseError, pos.Diagnostic(),
		"invalid command parameter: expected identifier or number")
}

// stepParameters is entered just past the '('. It repeatedly skips
// whitespace, scans one parameter, skips whitespace, then expects ',' to
// continue or ')' to end.
func (p *TreeParser[T]) stepParameters(tok *lexer.Tokenizer[T], pos lexer.Position, cmd *Command[T]) (lexer.Position, error) {
	cur := pos
	for {
		cur = tok.NextWhitespace(cur).End
		param, err := p.nextParameter(tok, cur)
		if err != nil {
			return pos, err
		}
		cur = param.End
		cmd.Parameters = append(cmd.Parameters, param)
		cur = tok.NextWhitespace(cur).End

		next := tok.NextCodepoint(cur)
		switch next.Codepoint {
		case ')':
			return next.Range.End, nil
		case ',':
			cur = next.Range.End
		default:
			return pos, markuperr.New(markuperr.ParseError, pos.Diagnostic(),
				"invalid command parameters: expected ',' or ')'")
		}
	}
}
