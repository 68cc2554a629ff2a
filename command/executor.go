package command

import (
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
)

// Executor walks a parsed Command tree against a Registry, dispatching each
// node through the uniform Handler lifecycle (spec.md §4.3). It performs no
// retries and does not catch handler errors — they propagate to the caller.
type Executor[T lexer.CodeUnit] struct {
	Registry *Registry[T]
}

// NewExecutor creates an Executor bound to registry.
func NewExecutor[T lexer.CodeUnit](registry *Registry[T]) *Executor[T] {
	return &Executor[T]{Registry: registry}
}

// Execute walks cmd: Lookup -> Validate -> OnBegin -> (per child: OnChild,
// optionally recurse) -> OnEnd.
func (e *Executor[T]) Execute(cmd *parser.Command[T]) error {
	handler, err := e.Registry.Lookup(cmd.Name.String(), cmd.Name.Begin)
	if err != nil {
		return err
	}

	if err := handler.Validate(cmd); err != nil {
		return err
	}
	if err := handler.OnBegin(cmd); err != nil {
		return err
	}

	for _, child := range cmd.Children {
		if child.IsRaw {
			if err := handler.OnChildRaw(cmd, child.Raw); err != nil {
				return err
			}
			continue
		}

		if err := handler.OnChildCommand(cmd, child.Command); err != nil {
			return err
		}
		if handler.ExecuteChildCommands() {
			if err := e.Execute(child.Command); err != nil {
				return err
			}
		}
	}

	return handler.OnEnd(cmd)
}
