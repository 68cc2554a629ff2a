package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateCountsHoles(t *testing.T) {
	tmpl, err := ParseTemplate("bold", `<b>\#0</b>`)
	require.NoError(t, err)
	assert.Equal(t, 1, tmpl.RequiredParameterCount)
}

func TestParseTemplateNoHoles(t *testing.T) {
	tmpl, err := ParseTemplate("hr", `<hr/>`)
	require.NoError(t, err)
	assert.Equal(t, 0, tmpl.RequiredParameterCount)
}

func TestParseTemplateRequiresDigitAfterHash(t *testing.T) {
	_, err := ParseTemplate("bad", `\#x`)
	assert.Error(t, err)
}

func TestParseTemplateHighestIndexDrivesCount(t *testing.T) {
	tmpl, err := ParseTemplate("pair", `\#1 and \#0`)
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.RequiredParameterCount)
}

func TestGenerateFromSubstitutesHoles(t *testing.T) {
	root := mustParse(t, `\style(red){x}`)
	cmd := root.Children[0].Command

	tmpl, err := ParseTemplate("style", `<span color="\#0">`)
	require.NoError(t, err)

	got := GenerateFrom(tmpl, cmd)
	assert.Equal(t, `<span color="red">`, got)
}
