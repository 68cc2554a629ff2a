package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/command"
)

func buildBoldMacroRegistry(t *testing.T) (*command.Registry[byte], *Sink) {
	t.Helper()
	before, err := ParseTemplate("bold", `\output_body{<b>`)
	require.NoError(t, err)
	after, err := ParseTemplate("bold", `</b>}`)
	require.NoError(t, err)

	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)

	macro, err := NewReplacement[byte]("bold", before, after, command.Prototype{
		Parameters: command.ParametersAbsent,
		Body:       command.BodyRequired,
	})
	require.NoError(t, err)
	exec := command.NewExecutor[byte](reg)
	macro.SetExecutor(exec)
	reg.Register(macro)

	return reg, &out
}

func TestReplacementSplicesOriginalChildrenBetweenGeneratedBodies(t *testing.T) {
	reg, out := buildBoldMacroRegistry(t)
	root := mustParse(t, `before \bold{loud} after`)

	exec := command.NewExecutor[byte](reg)
	require.NoError(t, exec.Execute(root))
	assert.Equal(t, "before <b>loud</b> after", out.String())
}

func TestReplacementRejectsParametersWhenAbsentDeclared(t *testing.T) {
	reg, _ := buildBoldMacroRegistry(t)
	root := mustParse(t, `\bold(red){loud}`)

	exec := command.NewExecutor[byte](reg)
	assert.Error(t, exec.Execute(root))
}

func TestReplacementWithParameterHole(t *testing.T) {
	before, err := ParseTemplate("color", `\output_body{<span style="color:\#0">`)
	require.NoError(t, err)
	after, err := ParseTemplate("color", `</span>}`)
	require.NoError(t, err)

	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)

	macro, err := NewReplacement[byte]("color", before, after, command.Prototype{
		Parameters: command.ParametersExact,
		Exact:      []command.Slot{{Kind: command.SlotIdentifier}},
		Body:       command.BodyRequired,
	})
	require.NoError(t, err)
	exec := command.NewExecutor[byte](reg)
	macro.SetExecutor(exec)
	reg.Register(macro)

	root := mustParse(t, `\color(red){hot}`)
	require.NoError(t, exec.Execute(root))
	assert.Equal(t, `<span style="color:red">hot</span>`, out.String())
}

func TestNewReplacementRejectsHoleBeyondAbsentPrototype(t *testing.T) {
	before, err := ParseTemplate("oops", `\output_body{\#3}`)
	require.NoError(t, err)
	after, err := ParseTemplate("oops", ``)
	require.NoError(t, err)

	_, err = NewReplacement[byte]("oops", before, after, command.Prototype{
		Parameters: command.ParametersAbsent,
	})
	assert.Error(t, err)
}

func TestNewReplacementRejectsHoleBeyondExactSlotCount(t *testing.T) {
	before, err := ParseTemplate("oops", `\output_body{\#1}`)
	require.NoError(t, err)
	after, err := ParseTemplate("oops", ``)
	require.NoError(t, err)

	_, err = NewReplacement[byte]("oops", before, after, command.Prototype{
		Parameters: command.ParametersExact,
		Exact:      []command.Slot{{Kind: command.SlotIdentifier}},
	})
	assert.Error(t, err)
}

func TestReplacementFailsWithoutExecutorAssigned(t *testing.T) {
	before, err := ParseTemplate("bare", `x`)
	require.NoError(t, err)
	after, err := ParseTemplate("bare", ``)
	require.NoError(t, err)

	macro, err := NewReplacement[byte]("bare", before, after, command.Prototype{})
	require.NoError(t, err)
	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)
	reg.Register(macro)

	root := mustParse(t, `\bare;`)
	exec := command.NewExecutor[byte](reg)
	assert.Error(t, exec.Execute(root))
}
