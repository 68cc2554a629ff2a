package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/parser"
	"github.com/opal-lang/markup/regions"
)

func TestRegionPropertiesOpensAndRestoresPreviousValue(t *testing.T) {
	root := mustParse(t, `plain \bold{strong} plain again`)

	var out Sink
	styleRegions := regions.New[string]()
	reg := command.NewRegistry[byte]()
	Install(reg, &out)
	reg.Register(NewRegionProperties[byte, string]("bold", &out, styleRegions,
		func(*parser.Command[byte]) string { return "bold" }))

	exec := command.NewExecutor[byte](reg)
	require.NoError(t, exec.Execute(root))

	assert.Equal(t, "plain strong plain again", out.String())

	breakpoints := styleRegions.Breakpoints()
	require.Len(t, breakpoints, 2)
	assert.Equal(t, 6, breakpoints[0].Offset)
	assert.Equal(t, "bold", breakpoints[0].Value)
	assert.Equal(t, 12, breakpoints[1].Offset)
	assert.Equal(t, "", breakpoints[1].Value)
}

func TestRegionPropertiesAllowsParameters(t *testing.T) {
	var out Sink
	styleRegions := regions.New[string]()
	h := NewRegionProperties[byte, string]("tint", &out, styleRegions,
		func(cmd *parser.Command[byte]) string {
			if len(cmd.Parameters) > 0 {
				return cmd.Parameters[0].String()
			}
			return ""
		})

	root := mustParse(t, `\tint(red){x}`)
	assert.NoError(t, h.Validate(root.Children[0].Command))
}
