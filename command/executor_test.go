package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

type recordingHandler struct {
	Base[byte]
	name   string
	events *[]string
}

func (h recordingHandler) OnBegin(*parser.Command[byte]) error {
	*h.events = append(*h.events, "begin:"+h.name)
	return nil
}

func (h recordingHandler) OnChildRaw(_ *parser.Command[byte], child lexer.Range[byte]) error {
	*h.events = append(*h.events, "raw:"+child.String())
	return nil
}

func (h recordingHandler) OnChildCommand(_ *parser.Command[byte], child *parser.Command[byte]) error {
	*h.events = append(*h.events, "child:"+child.Name.String())
	return nil
}

func (h recordingHandler) OnEnd(*parser.Command[byte]) error {
	*h.events = append(*h.events, "end:"+h.name)
	return nil
}

func (h recordingHandler) Name() string { return h.name }

func parseRoot(t *testing.T, input string) *parser.Command[byte] {
	t.Helper()
	tok := lexer.NewBytes([]byte(input))
	p := parser.New[byte]()
	require.NoError(t, p.ParseAll(tok))
	return p.Root
}

func TestExecutorLifecycleOrder(t *testing.T) {
	root := parseRoot(t, `a\inner{b}`)

	var events []string
	reg := NewRegistry[byte]()
	reg.Register(recordingHandler{name: "", events: &events})
	reg.Register(recordingHandler{name: "inner", events: &events})

	exec := NewExecutor[byte](reg)
	require.NoError(t, exec.Execute(root))

	assert.Equal(t, []string{
		"begin:",
		"raw:a",
		"child:inner",
		"begin:inner",
		"raw:b",
		"end:inner",
		"end:",
	}, events)
}

type nonRecursingHandler struct {
	Base[byte]
	name    string
	reached *bool
}

func (h nonRecursingHandler) Name() string                    { return h.name }
func (h nonRecursingHandler) ExecuteChildCommands() bool       { return false }
func (h nonRecursingHandler) OnChildCommand(*parser.Command[byte], *parser.Command[byte]) error {
	*h.reached = true
	return nil
}

func TestExecutorSkipsRecurseWhenHandlerDeclines(t *testing.T) {
	root := parseRoot(t, `\outer{\missing{x}}`)

	var innerReached bool
	reg := NewRegistry[byte]()
	reg.Register(nonRecursingHandler{name: "", reached: &innerReached})
	reg.Register(nonRecursingHandler{name: "outer", reached: &innerReached})

	exec := NewExecutor[byte](reg)
	require.NoError(t, exec.Execute(root))
	assert.True(t, innerReached, "OnChildCommand must still fire even when recursion is skipped")
}

func TestExecutorPropagatesLookupError(t *testing.T) {
	root := parseRoot(t, `\unknown;`)
	reg := NewRegistry[byte]()
	reg.Register(recordingHandler{name: "", events: &[]string{}})

	exec := NewExecutor[byte](reg)
	err := exec.Execute(root)
	assert.Error(t, err)
}
