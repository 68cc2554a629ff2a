package builtin

import (
	"fmt"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
	"github.com/opal-lang/markup/parser"
)

// Replacement is a runtime-defined macro: a command whose body is rewritten
// at call time by substituting its parameters into two template strings
// (before and after the original body) and re-running the tokenizer, tree
// parser and executor over the result, with the original children spliced
// in at the join point. Grounded on runtime_defined_replacement in
// commands_definitions.h.
//
// Replacement does not execute its own children directly — it hands the
// reassembled tree to Executor and lets the nested Execute call do it, so
// ExecuteChildCommands reports false to keep the outer Executor from also
// recursing into the (by then stale) original children.
type Replacement[T lexer.CodeUnit] struct {
	command.Base[T]

	CommandName string
	Summary     string
	Version     string
	BeforeBody  *Template
	AfterBody   *Template
	Prototype   command.Prototype

	// Executor is a back-reference assigned after construction and before
	// first use, mirroring commands_executor_ptr in the original source:
	// the handler needs to recurse through the same Executor/Registry pair
	// it is itself registered with, which does not exist yet at the point
	// handlers are built.
	Executor *command.Executor[T]

	cache *generationCache
}

// NewReplacement builds a Replacement command definition. beforeBody and
// afterBody are `\#N`-templated prototype strings; proto constrains the
// invoking command's parameters and body the same way any other command's
// Prototype does. Executor must be assigned with SetExecutor before the
// first Execute call reaches this handler.
//
// It rejects a template that references more parameters than proto can
// ever supply (Exact's slot count, or zero for Absent) at construction
// time, rather than leaving a misconfigured macro to fail lazily on its
// first call — mirrored on runtime_defined_replacement's constructor in
// commands_definitions.h, which performs the same check against its
// parameters_type_variant before accepting a replacement_piece pair.
func NewReplacement[T lexer.CodeUnit](name string, beforeBody, afterBody *Template, proto command.Prototype) (*Replacement[T], error) {
	if err := checkTemplateArity(name, "before", beforeBody, proto); err != nil {
		return nil, err
	}
	if err := checkTemplateArity(name, "after", afterBody, proto); err != nil {
		return nil, err
	}
	return &Replacement[T]{
		CommandName: name,
		BeforeBody:  beforeBody,
		AfterBody:   afterBody,
		Prototype:   proto,
		cache:       newGenerationCache(),
	}, nil
}

// checkTemplateArity reports an error if tmpl references a parameter index
// proto's Parameters contract can never supply: Absent allows none, Exact
// allows exactly len(proto.Exact). Any is unbounded and is not checked.
func checkTemplateArity(name, which string, tmpl *Template, proto command.Prototype) error {
	var max int
	switch proto.Parameters {
	case command.ParametersAbsent:
		max = 0
	case command.ParametersExact:
		max = len(proto.Exact)
	default:
		return nil
	}
	if tmpl.RequiredParameterCount > max {
		return fmt.Errorf("command %q: %s-body template references parameter #%d but the declared prototype supplies at most %d",
			name, which, tmpl.RequiredParameterCount-1, max)
	}
	return nil
}

// SetExecutor assigns the back-reference Executor. It must be called once,
// after the Executor (and the Registry this handler is registered in) both
// exist, and before the first command using this handler is executed.
func (h *Replacement[T]) SetExecutor(e *command.Executor[T]) { h.Executor = e }

func (h *Replacement[T]) Name() string { return h.CommandName }

// Descriptor reports this macro's metadata, letting an embedder version a
// macro pack and detect a stale one (see markupcfg.MacroDef's Version
// field) — semver validity is checked by command.Descriptor.Validate.
func (h *Replacement[T]) Descriptor() command.Descriptor {
	// Build's own Version check is ignored here (it returns the Descriptor
	// either way) because callers that care — markupcfg.BuildReplacements —
	// call Descriptor().Validate() themselves and report that error.
	d, _ := command.NewDescriptor(h.CommandName).
		Summary(h.Summary).
		Version(h.Version).
		Parameters(h.Prototype.Parameters).
		Body(h.Prototype.Body).
		Build()
	return d
}

func (h *Replacement[T]) ExecuteChildCommands() bool { return false }

func (h *Replacement[T]) Validate(cmd *parser.Command[T]) error {
	if err := command.Validate(h.Prototype, h.CommandName, cmd); err != nil {
		return err
	}
	if len(cmd.Parameters) < h.BeforeBody.RequiredParameterCount {
		return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
			"command %q: before-body template expects at least %d parameters, received %d",
			h.CommandName, h.BeforeBody.RequiredParameterCount, len(cmd.Parameters))
	}
	if len(cmd.Parameters) < h.AfterBody.RequiredParameterCount {
		return markuperr.New(markuperr.ValidationError, cmd.Name.Begin.Diagnostic(),
			"command %q: after-body template expects at least %d parameters, received %d",
			h.CommandName, h.AfterBody.RequiredParameterCount, len(cmd.Parameters))
	}
	return nil
}

func (h *Replacement[T]) OnBegin(cmd *parser.Command[T]) error {
	if h.Executor == nil {
		return markuperr.New(markuperr.RuntimeError, cmd.Name.Begin.Diagnostic(),
			"command %q: Executor must be assigned (see SetExecutor) before execution", h.CommandName)
	}

	before, after, ok := h.lookupOrGenerate(cmd)
	if !ok {
		before = GenerateFrom(h.BeforeBody, cmd)
		after = GenerateFrom(h.AfterBody, cmd)
		h.store(cmd, before, after)
	}

	beforeTok := lexer.NewFor(lexer.EncodeString[T](before))
	afterTok := lexer.NewFor(lexer.EncodeString[T](after))

	tree := parser.New[T]()
	if err := tree.ParseStream(beforeTok); err != nil {
		return h.wrapParseError(cmd, "before", err)
	}
	tree.SpliceChildren(cmd.Children)
	if err := tree.ParseStream(afterTok); err != nil {
		return h.wrapParseError(cmd, "after", err)
	}

	if err := h.Executor.Execute(tree.Root); err != nil {
		return markuperr.Wrap(markuperr.RuntimeError, cmd.Name.Begin.Diagnostic(), err,
			"command %q: error executing the generated replacement body", h.CommandName)
	}
	return nil
}

func (h *Replacement[T]) wrapParseError(cmd *parser.Command[T], which string, err error) error {
	return markuperr.Wrap(markuperr.RuntimeError, cmd.Name.Begin.Diagnostic(), err,
		"command %q: error parsing the generated %s-body string", h.CommandName, which)
}

// lookupOrGenerate returns a memoized before/after pair for cmd's current
// parameters, if one has already been generated for this exact template and
// parameter set.
func (h *Replacement[T]) lookupOrGenerate(cmd *parser.Command[T]) (before, after string, ok bool) {
	key := cacheKey(h.BeforeBody.Prototype, h.AfterBody.Prototype, paramStrings(cmd.Parameters))
	return h.cache.get(key)
}

func (h *Replacement[T]) store(cmd *parser.Command[T], before, after string) {
	key := cacheKey(h.BeforeBody.Prototype, h.AfterBody.Prototype, paramStrings(cmd.Parameters))
	h.cache.put(key, before, after)
}

func paramStrings[T lexer.CodeUnit](params []lexer.Range[T]) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}
	return out
}
