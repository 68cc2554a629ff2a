package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/command"
)

func TestUnicodeCodepointWritesRune(t *testing.T) {
	root := mustParse(t, `\unicode_codepoint(u1F604);`)

	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)

	exec := command.NewExecutor[byte](reg)
	require.NoError(t, exec.Execute(root))
	assert.Equal(t, "😄", out.String())
}

func TestUnicodeCodepointRejectsMissingUPrefix(t *testing.T) {
	root := mustParse(t, `\unicode_codepoint(1234);`)

	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)

	exec := command.NewExecutor[byte](reg)
	assert.Error(t, exec.Execute(root))
}

func TestUnicodeCodepointRejectsBodyOrExtraParams(t *testing.T) {
	root := mustParse(t, `\unicode_codepoint(u41){nope}`)

	var out Sink
	reg := command.NewRegistry[byte]()
	Install(reg, &out)

	exec := command.NewExecutor[byte](reg)
	assert.Error(t, exec.Execute(root))
}
