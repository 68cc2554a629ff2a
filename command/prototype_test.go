package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

func parseOneCommand(t *testing.T, input string) *parser.Command[byte] {
	t.Helper()
	tok := lexer.NewBytes([]byte(input))
	p := parser.New[byte]()
	require.NoError(t, p.ParseAll(tok))
	require.Len(t, p.Root.Children, 1)
	cmd := p.Root.Children[0].Command
	require.NotNil(t, cmd)
	return cmd
}

func TestValidateParametersAbsent(t *testing.T) {
	cmd := parseOneCommand(t, `\foo;`)
	assert.NoError(t, Validate(Prototype{Parameters: ParametersAbsent}, "foo", cmd))

	cmd2 := parseOneCommand(t, `\foo(1);`)
	assert.Error(t, Validate(Prototype{Parameters: ParametersAbsent}, "foo", cmd2))
}

func TestValidateExactNumberSlot(t *testing.T) {
	cmd := parseOneCommand(t, `\size(12);`)
	proto := Prototype{
		Parameters: ParametersExact,
		Exact:      []Slot{{Kind: SlotNumber, Min: 0, Max: 100}},
	}
	assert.NoError(t, Validate(proto, "size", cmd))

	cmd2 := parseOneCommand(t, `\size(999);`)
	assert.Error(t, Validate(proto, "size", cmd2))
}

func TestValidateExactIdentifierOneOf(t *testing.T) {
	proto := Prototype{
		Parameters: ParametersExact,
		Exact:      []Slot{{Kind: SlotIdentifier, OneOf: []string{"left", "right"}}},
	}
	cmd := parseOneCommand(t, `\align(left);`)
	assert.NoError(t, Validate(proto, "align", cmd))

	cmd2 := parseOneCommand(t, `\align(center);`)
	assert.Error(t, Validate(proto, "align", cmd2))
}

func TestValidateExactTooFewParameters(t *testing.T) {
	proto := Prototype{
		Parameters: ParametersExact,
		Exact:      []Slot{{Kind: SlotAny}, {Kind: SlotAny}},
	}
	cmd := parseOneCommand(t, `\pair(a);`)
	assert.Error(t, Validate(proto, "pair", cmd))
}

func TestValidateBodyRequirements(t *testing.T) {
	withBody := parseOneCommand(t, `\x{body}`)
	withoutBody := parseOneCommand(t, `\x;`)

	assert.NoError(t, Validate(Prototype{Body: BodyRequired}, "x", withBody))
	assert.Error(t, Validate(Prototype{Body: BodyRequired}, "x", withoutBody))
	assert.NoError(t, Validate(Prototype{Body: BodyAbsent}, "x", withoutBody))
	assert.Error(t, Validate(Prototype{Body: BodyAbsent}, "x", withBody))
}

func TestValidateStringSlotSchema(t *testing.T) {
	proto := Prototype{
		Parameters: ParametersExact,
		Exact: []Slot{{
			Kind:   SlotString,
			Schema: &StringSchema{Raw: []byte(`{"pattern": "^[a-z]+$"}`)},
		}},
	}
	cmd := parseOneCommand(t, `\tag(abc);`)
	assert.NoError(t, Validate(proto, "tag", cmd))

	cmd2 := parseOneCommand(t, `\tag(ABC);`)
	assert.Error(t, Validate(proto, "tag", cmd2))
}
