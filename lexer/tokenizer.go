package lexer

import (
	"strings"
	"unicode"

	"github.com/opal-lang/markup/markuperr"
)

// Tokenizer provides codepoint-granularity scanning over one immutable input
// sequence. It is configured once with an input and a Decoder and is
// otherwise stateless: every scan takes a starting Position and returns
// either a decoded codepoint or a Range, never mutating the Tokenizer.
type Tokenizer[T CodeUnit] struct {
	input   []T
	decoder Decoder[T]
}

// New constructs a Tokenizer over input using decoder to cross the
// encoding boundary.
func New[T CodeUnit](input []T, decoder Decoder[T]) *Tokenizer[T] {
	return &Tokenizer[T]{input: input, decoder: decoder}
}

// NewBytes builds a Tokenizer over a UTF-8 byte slice (the 8-bit
// instantiation).
func NewBytes(input []byte) *Tokenizer[byte] { return New(input, ByteDecoder{}) }

// NewUint16 builds a Tokenizer over a UTF-16 uint16 slice (the 16-bit
// instantiation).
func NewUint16(input []uint16) *Tokenizer[uint16] { return New(input, Uint16Decoder{}) }

// NewRunes builds a Tokenizer over a rune slice (Go's platform-default text
// unit instantiation).
func NewRunes(input []rune) *Tokenizer[rune] { return New(input, RuneDecoder{}) }

// Begin returns the Position at the start of the input.
func (t *Tokenizer[T]) Begin() Position { return Position{} }

// End returns the Position one past the end of the input.
func (t *Tokenizer[T]) End() Position { return Position{Offset: len(t.input)} }

// Len reports the input's length in code units.
func (t *Tokenizer[T]) Len() int { return len(t.input) }

func (t *Tokenizer[T]) makeRange(begin, end Position) Range[T] {
	return Range[T]{Begin: begin, End: end, input: t.input}
}

// RangeBetween builds a Range[T] anchored in this tokenizer's input between
// two Positions previously produced by this tokenizer's scans. Exported so
// callers assembling syntactic constructs from several scan results (e.g.
// the parser stitching a command's name Range together with its enclosing
// call Range) can construct Ranges without re-scanning.
func (t *Tokenizer[T]) RangeBetween(begin, end Position) Range[T] {
	return t.makeRange(begin, end)
}

// NextCodepoint decodes one scalar value at pos and returns it with its
// Range, advancing line/column per Position.advance. It never fails: on
// malformed input it returns whatever the Decoder falls back to
// (ByteDecoder: U+FFFD covering one byte; Uint16Decoder: an unpaired
// surrogate's own value covering one unit); the tokenizer itself never
// inspects validity further.
func (t *Tokenizer[T]) NextCodepoint(pos Position) CodepointRange[T] {
	if pos.Offset >= len(t.input) {
		return CodepointRange[T]{Codepoint: 0, Range: t.makeRange(pos, pos)}
	}
	r, size := t.decoder.Decode(t.input, pos.Offset)
	if size == 0 {
		return CodepointRange[T]{Codepoint: 0, Range: t.makeRange(pos, pos)}
	}
	end := pos.advance(size, r == '\n')
	return CodepointRange[T]{Codepoint: r, Range: t.makeRange(pos, end)}
}

// nextWhile consumes codepoints starting at pos while predicate holds,
// stopping at end-of-input or the first codepoint for which predicate
// returns false (that codepoint is not consumed).
func (t *Tokenizer[T]) nextWhile(pos Position, predicate func(rune) bool) Range[T] {
	cur := pos
	for cur.Offset < len(t.input) {
		cpr := t.NextCodepoint(cur)
		if cpr.Range.Empty() || !predicate(cpr.Codepoint) {
			break
		}
		cur = cpr.Range.End
	}
	return t.makeRange(pos, cur)
}

// NextWhitespace returns the longest Range starting at pos whose every
// codepoint is Unicode whitespace (may be empty).
func (t *Tokenizer[T]) NextWhitespace(pos Position) Range[T] {
	return t.nextWhile(pos, unicode.IsSpace)
}

// isIdentifierStart implements the stricter [A-Za-z_] reading spec.md
// prefers over the original source's A..z quirk (see DESIGN.md).
func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9')
}

// NextIdentifier matches [A-Za-z_][A-Za-z0-9_]* over ASCII only. Empty if
// the first codepoint doesn't match.
func (t *Tokenizer[T]) NextIdentifier(pos Position) Range[T] {
	first := t.NextCodepoint(pos)
	if first.Range.Empty() || !isIdentifierStart(first.Codepoint) {
		return t.makeRange(pos, pos)
	}
	rest := t.nextWhile(first.Range.End, isIdentifierContinue)
	return t.makeRange(pos, rest.End)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// NextNumber matches [0-9]+(\.[0-9]*)? or \.[0-9]+. Concretely: an optional
// leading digit run, then optionally a '.' followed by another digit run;
// the dot alone is not consumed unless a digit follows it or preceded it,
// and a trailing dot with no following digits (e.g. "123.") is returned
// without the dot.
func (t *Tokenizer[T]) NextNumber(pos Position) Range[T] {
	firstHalf := t.nextWhile(pos, isDigit)
	if firstHalf.End.Offset >= len(t.input) {
		return firstHalf
	}

	dot := t.NextCodepoint(firstHalf.End)
	if dot.Codepoint != '.' {
		return firstHalf
	}
	if dot.Range.End.Offset >= len(t.input) {
		return firstHalf
	}

	secondHalf := t.nextWhile(dot.Range.End, isDigit)
	if secondHalf.Empty() {
		return firstHalf
	}
	return t.makeRange(firstHalf.Begin, secondHalf.End)
}

// NextString, if pos starts with '"', consumes up to and including the
// matching closing '"', honoring \" as an escape for a literal double
// quote. A string missing its closing quote is returned as the Range from
// the opening quote to end-of-input; no error is raised at scan time.
//
// This scanner is used by the tokenizer's quoted-string primitive only; it
// is not part of the top-level program grammar (see spec.md §6).
func (t *Tokenizer[T]) NextString(pos Position) Range[T] {
	open := t.NextCodepoint(pos)
	if open.Codepoint != '"' {
		return t.makeRange(pos, pos)
	}

	prev := open
	for {
		if prev.Range.End.Offset >= len(t.input) {
			return t.makeRange(pos, prev.Range.End)
		}
		cur := t.NextCodepoint(prev.Range.End)
		if cur.Codepoint == '"' && prev.Codepoint != '\\' {
			return t.makeRange(pos, cur.Range.End)
		}
		prev = cur
	}
}

// IsWhitespace reports whether NextWhitespace starting at the beginning
// consumes the entire input.
func (t *Tokenizer[T]) IsWhitespace() bool { return t.fullSpan(t.NextWhitespace(t.Begin())) }

// IsIdentifier reports whether NextIdentifier starting at the beginning
// consumes the entire input.
func (t *Tokenizer[T]) IsIdentifier() bool { return t.fullSpan(t.NextIdentifier(t.Begin())) }

// IsNumber reports whether NextNumber starting at the beginning consumes
// the entire input.
func (t *Tokenizer[T]) IsNumber() bool { return t.fullSpan(t.NextNumber(t.Begin())) }

// IsString reports whether NextString starting at the beginning consumes
// the entire input.
func (t *Tokenizer[T]) IsString() bool { return t.fullSpan(t.NextString(t.Begin())) }

func (t *Tokenizer[T]) fullSpan(r Range[T]) bool {
	return r.Begin.Offset == 0 && r.End.Offset == len(t.input)
}

// ExtractNumber parses the tokenizer's entire input as a number, accumulating
// digit-by-digit: for the integer part, acc = acc*10 + d for each digit d;
// after the decimal point, acc += d*m with m starting at 0.1 and multiplied
// by 0.1 per digit. This is a deliberate best-effort reader, not a bit-exact
// IEEE-754 routine (see spec.md §1 Non-goals).
func (t *Tokenizer[T]) ExtractNumber() (float64, error) {
	if !t.IsNumber() {
		return 0, markuperr.New(markuperr.LexError, t.Begin().Diagnostic(),
			"tokenizer does not contain a number; check IsNumber before calling ExtractNumber")
	}

	var acc float64
	cp := t.NextCodepoint(t.Begin())
	for {
		if cp.Codepoint == '.' {
			break
		}
		acc = acc*10 + float64(cp.Codepoint-'0')
		if cp.Range.End.Offset >= len(t.input) {
			return acc, nil
		}
		cp = t.NextCodepoint(cp.Range.End)
	}
	cp = t.NextCodepoint(cp.Range.End)

	multiplier := 0.1
	for {
		acc += float64(cp.Codepoint-'0') * multiplier
		if cp.Range.End.Offset >= len(t.input) {
			break
		}
		multiplier *= 0.1
		cp = t.NextCodepoint(cp.Range.End)
	}
	return acc, nil
}

// ExtractString decodes the tokenizer's entire input as a quoted string,
// translating escapes: \\ -> \, \" -> ", \t -> HT, \n -> LF. Any other \X
// is a LexError. end-of-input is treated like a closing quote.
func (t *Tokenizer[T]) ExtractString() (string, error) {
	if !t.IsString() {
		return "", markuperr.New(markuperr.LexError, t.Begin().Diagnostic(),
			"tokenizer does not contain a string; check IsString before calling ExtractString")
	}

	var out strings.Builder
	cp := t.NextCodepoint(t.NextCodepoint(t.Begin()).Range.End)
	for {
		switch {
		case cp.Codepoint == '\\':
			after := t.NextCodepoint(cp.Range.End)
			switch after.Codepoint {
			case '\\':
				out.WriteRune('\\')
			case '"':
				out.WriteRune('"')
			case 't':
				out.WriteRune('\t')
			case 'n':
				out.WriteRune('\n')
			default:
				return "", markuperr.New(markuperr.LexError, cp.Range.Begin.Diagnostic(),
					"invalid escape sequence \\%c", after.Codepoint)
			}
			cp = t.NextCodepoint(after.Range.End)
		case cp.Codepoint == '"':
			return out.String(), nil
		case cp.Range.Empty():
			return out.String(), nil
		default:
			out.WriteRune(cp.Codepoint)
			cp = t.NextCodepoint(cp.Range.End)
		}
	}
}
