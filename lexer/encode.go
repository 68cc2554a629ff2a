package lexer

import "unicode/utf16"

// EncodeString converts a Go string into the code-unit representation T
// expects. It is the inverse of the String()/Units() views Range exposes,
// used wherever generated text (e.g. a runtime-defined replacement's
// substituted template) must be re-tokenized in the same code-unit type as
// the command that produced it.
func EncodeString[T CodeUnit](s string) []T {
	var zero T
	switch any(zero).(type) {
	case byte:
		return any([]byte(s)).([]T)
	case uint16:
		return any(utf16.Encode([]rune(s))).([]T)
	case rune:
		return any([]rune(s)).([]T)
	default:
		panic("unreachable: unsupported CodeUnit instantiation")
	}
}

// NewFor builds a Tokenizer[T] over units, selecting the matching Decoder
// for whichever concrete CodeUnit T is.
func NewFor[T CodeUnit](units []T) *Tokenizer[T] {
	var zero T
	switch any(zero).(type) {
	case byte:
		return any(New(any(units).([]byte), ByteDecoder{})).(*Tokenizer[T])
	case uint16:
		return any(New(any(units).([]uint16), Uint16Decoder{})).(*Tokenizer[T])
	case rune:
		return any(New(any(units).([]rune), RuneDecoder{})).(*Tokenizer[T])
	default:
		panic("unreachable: unsupported CodeUnit instantiation")
	}
}
