package command

import (
	"math"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
	"github.com/opal-lang/markup/parser"
)

// ParametersKind tags which parameter-list contract a Prototype declares.
type ParametersKind int

const (
	// ParametersAny accepts any parameter list.
	ParametersAny ParametersKind = iota
	// ParametersExact requires an ordered list of per-slot type predicates.
	ParametersExact
	// ParametersAbsent requires an empty parameter list.
	ParametersAbsent
)

// BodyRequirement tags whether a command's body (children) is mandatory.
type BodyRequirement int

const (
	BodyOptional BodyRequirement = iota
	BodyRequired
	BodyAbsent
)

// SlotKind tags which per-slot predicate an Exact parameter list slot uses.
type SlotKind int

const (
	SlotAny SlotKind = iota
	SlotNumber
	SlotIdentifier
	SlotString
)

// Slot is one per-parameter-slot predicate in an Exact parameter contract.
type Slot struct {
	Kind SlotKind
	// Min, Max bound a SlotNumber slot inclusively. When both are zero the
	// slot is unbounded; a zero left in only one of them is used as that
	// bound.
	Min, Max float64
	// OneOf restricts a SlotIdentifier slot's accepted values; empty means
	// any identifier is accepted.
	OneOf []string
	// Schema is an optional JSON Schema (compact form, see
	// command.StringSchema) a SlotString slot's decoded value must satisfy.
	// Implements the String predicate spec.md's open questions left
	// "declared but unimplemented" in the original source.
	Schema *StringSchema
}

// Prototype is the declared shape a Handler validates a Command against:
// the parameter-list contract plus the body requirement.
type Prototype struct {
	Parameters ParametersKind
	Exact      []Slot
	Body       BodyRequirement
}

// Validate checks cmd against p, raising a ValidationError on mismatch.
// Name matching against a prototype owner is the caller's (Registry's)
// responsibility; Validate only checks parameters and body shape.
func Validate[T lexer.CodeUnit](p Prototype, name string, cmd *parser.Command[T]) error {
	switch p.Parameters {
	case ParametersAny:
		// no check
	case ParametersExact:
		for i, slot := range p.Exact {
			if i >= len(cmd.Parameters) {
				return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
					"command %q expects at least %d parameters, received %d", name, len(p.Exact), len(cmd.Parameters))
			}
			if err := validateSlot(name, i, slot, cmd.Parameters[i]); err != nil {
				return err
			}
		}
		if len(cmd.Parameters) > len(p.Exact) {
			return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
				"command %q expects at most %d parameters, received %d", name, len(p.Exact), len(cmd.Parameters))
		}
	case ParametersAbsent:
		if len(cmd.Parameters) != 0 {
			return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
				"command %q expects no parameters, received %d", name, len(cmd.Parameters))
		}
	}

	switch p.Body {
	case BodyOptional:
		// no check
	case BodyRequired:
		if len(cmd.Children) == 0 {
			return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
				"command %q expects a body", name)
		}
	case BodyAbsent:
		if len(cmd.Children) != 0 {
			return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
				"command %q expects no body", name)
		}
	}
	return nil
}

func validateSlot[T lexer.CodeUnit](name string, index int, slot Slot, param lexer.Range[T]) error {
	switch slot.Kind {
	case SlotAny:
		return nil
	case SlotNumber:
		text := unitsAsTokenizer(param)
		if !text.IsNumber() {
			return markuperr.New(markuperr.ValidationError, param.Begin.Diagnostic(),
				"command %q expects a number as parameter #%d, received %q", name, index, param.String())
		}
		value, _ := text.ExtractNumber()
		min, max := slot.Min, slot.Max
		if min == 0 && max == 0 {
			min, max = math.Inf(-1), math.Inf(1)
		}
		if value < min || value > max {
			return markuperr.New(markuperr.ValidationError, param.Begin.Diagnostic(),
				"command %q parameter #%d (%v) is out of range [%v, %v]", name, index, value, min, max)
		}
		return nil
	case SlotIdentifier:
		text := unitsAsTokenizer(param)
		if !text.IsIdentifier() {
			return markuperr.New(markuperr.ValidationError, param.Begin.Diagnostic(),
				"command %q expects an identifier as parameter #%d, received %q", name, index, param.String())
		}
		if len(slot.OneOf) > 0 {
			value := param.String()
			for _, allowed := range slot.OneOf {
				if allowed == value {
					return nil
				}
			}
			return markuperr.New(markuperr.ValidationError, param.Begin.Diagnostic(),
				"command %q parameter #%d (%q) is not one of %v", name, index, value, slot.OneOf)
		}
		return nil
	case SlotString:
		return validateStringSlot(name, index, slot, param)
	default:
		return nil
	}
}

// unitsAsTokenizer builds a fresh Tokenizer over a single parameter's code
// units so its shape can be re-checked in isolation (mirrors the original's
// "re-tokenize this parameter's view" validation approach).
func unitsAsTokenizer[T lexer.CodeUnit](r lexer.Range[T]) *lexer.Tokenizer[T] {
	var zero T
	switch any(zero).(type) {
	case byte:
		return any(lexer.New(any(r.Units()).([]byte), lexer.ByteDecoder{})).(*lexer.Tokenizer[T])
	case uint16:
		return any(lexer.New(any(r.Units()).([]uint16), lexer.Uint16Decoder{})).(*lexer.Tokenizer[T])
	case rune:
		return any(lexer.New(any(r.Units()).([]rune), lexer.RuneDecoder{})).(*lexer.Tokenizer[T])
	default:
		panic("unreachable: unsupported CodeUnit instantiation")
	}
}
