package markupcfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/command/builtin"
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

const samplePack = `
macros:
  - name: bold
    summary: wraps the body in <b> tags
    before: "\\output_body{<b>"
    after: "</b>}"
    parameters: absent
    body: required
  - name: tint
    before: "\\output_body{<span class=\"\\#0\">"
    after: "</span>}"
    parameters: exact
    slots:
      - kind: identifier
    body: required
`

func TestLoadAndBuildReplacements(t *testing.T) {
	pack, err := Load(strings.NewReader(samplePack))
	require.NoError(t, err)
	require.Len(t, pack.Macros, 2)

	macros, err := BuildReplacements[byte](pack)
	require.NoError(t, err)
	require.Len(t, macros, 2)

	var out builtin.Sink
	reg := command.NewRegistry[byte]()
	builtin.Install(reg, &out)

	exec := command.NewExecutor[byte](reg)
	for _, m := range macros {
		m.SetExecutor(exec)
		reg.Register(m)
	}

	tok := lexer.NewBytes([]byte(`\bold{hi} and \tint(warn){there}`))
	p := parser.New[byte]()
	require.NoError(t, p.ParseAll(tok))
	require.NoError(t, exec.Execute(p.Root))

	assert.Equal(t, `<b>hi</b> and <span class="warn">there</span>`, out.String())
}

func TestLoadRejectsInvalidVersion(t *testing.T) {
	const bad = `
macros:
  - name: x
    version: "not-semver"
    before: "a"
    after: "b"
    parameters: absent
    body: optional
`
	_, err := Load(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	const bad = `
macros:
  - name: x
    bogus_field: true
    before: "a"
    after: "b"
`
	_, err := Load(strings.NewReader(bad))
	assert.Error(t, err)
}
