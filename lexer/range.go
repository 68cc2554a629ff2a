package lexer

// Range is a half-open span [Begin, End) into one input sequence. Tokens and
// every syntactic construct the parser produces are recorded as Ranges into
// the original input; nothing is copied.
type Range[T CodeUnit] struct {
	Begin Position
	End   Position
	input []T
}

// String returns the view of the input this Range occupies.
func (r Range[T]) String() string {
	return unitsToString(r.input[r.Begin.Offset:r.End.Offset])
}

// Units returns the raw code units this Range occupies, without converting
// to string.
func (r Range[T]) Units() []T {
	return r.input[r.Begin.Offset:r.End.Offset]
}

// Empty reports whether the Range spans zero code units.
func (r Range[T]) Empty() bool {
	return r.Begin.Offset == r.End.Offset
}

// Len reports the Range's length in code units.
func (r Range[T]) Len() int {
	return r.End.Offset - r.Begin.Offset
}

// CodepointRange is a single decoded Unicode scalar value plus the Range it
// occupied.
type CodepointRange[T CodeUnit] struct {
	Codepoint rune
	Range     Range[T]
}

func unitsToString[T CodeUnit](units []T) string {
	switch v := any(units).(type) {
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	case []uint16:
		rs := make([]rune, 0, len(v))
		d := Uint16Decoder{}
		for i := 0; i < len(v); {
			r, size := d.Decode(v, i)
			if size == 0 {
				break
			}
			rs = append(rs, r)
			i += size
		}
		return string(rs)
	default:
		return ""
	}
}
