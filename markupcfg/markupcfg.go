// Package markupcfg loads runtime-defined replacement macros in bulk from a
// declarative YAML document, for embedders that want a macro pack authored
// as data rather than a sequence of NewReplacement calls (spec.md §4.5).
package markupcfg

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/command/builtin"
	"github.com/opal-lang/markup/lexer"
)

// SlotDef declares one Exact parameter slot's predicate.
type SlotDef struct {
	Kind  string          `yaml:"kind"`
	Min   *float64        `yaml:"min,omitempty"`
	Max   *float64        `yaml:"max,omitempty"`
	OneOf []string        `yaml:"one_of,omitempty"`
	Schema json.RawMessage `yaml:"schema,omitempty"`
}

// MacroDef is one runtime-defined replacement declared in a macro pack.
type MacroDef struct {
	Name       string    `yaml:"name"`
	Summary    string    `yaml:"summary,omitempty"`
	Version    string    `yaml:"version,omitempty"`
	Before     string    `yaml:"before"`
	After      string    `yaml:"after"`
	Parameters string    `yaml:"parameters"` // "any" | "absent" | "exact"
	Slots      []SlotDef `yaml:"slots,omitempty"`
	Body       string    `yaml:"body"` // "optional" | "required" | "absent"
}

// Pack is a YAML document listing zero or more MacroDef entries.
type Pack struct {
	Macros []MacroDef `yaml:"macros"`
}

// Load decodes a Pack from r.
func Load(r io.Reader) (*Pack, error) {
	var pack Pack
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pack); err != nil {
		return nil, fmt.Errorf("markupcfg: decoding macro pack: %w", err)
	}
	for i, m := range pack.Macros {
		if m.Version != "" && !semver.IsValid(m.Version) {
			return nil, fmt.Errorf("markupcfg: macro %q (entry %d): version %q is not valid semver", m.Name, i, m.Version)
		}
	}
	return &pack, nil
}

func parametersKind(s string) (command.ParametersKind, error) {
	switch s {
	case "", "any":
		return command.ParametersAny, nil
	case "absent":
		return command.ParametersAbsent, nil
	case "exact":
		return command.ParametersExact, nil
	default:
		return 0, fmt.Errorf("unknown parameters kind %q", s)
	}
}

func bodyRequirement(s string) (command.BodyRequirement, error) {
	switch s {
	case "", "optional":
		return command.BodyOptional, nil
	case "required":
		return command.BodyRequired, nil
	case "absent":
		return command.BodyAbsent, nil
	default:
		return 0, fmt.Errorf("unknown body requirement %q", s)
	}
}

func slotKind(s string) (command.SlotKind, error) {
	switch s {
	case "", "any":
		return command.SlotAny, nil
	case "number":
		return command.SlotNumber, nil
	case "identifier":
		return command.SlotIdentifier, nil
	case "string":
		return command.SlotString, nil
	default:
		return 0, fmt.Errorf("unknown slot kind %q", s)
	}
}

func buildPrototype(m MacroDef) (command.Prototype, error) {
	var proto command.Prototype
	kind, err := parametersKind(m.Parameters)
	if err != nil {
		return proto, fmt.Errorf("macro %q: %w", m.Name, err)
	}
	proto.Parameters = kind

	if kind == command.ParametersExact {
		proto.Exact = make([]command.Slot, len(m.Slots))
		for i, s := range m.Slots {
			k, err := slotKind(s.Kind)
			if err != nil {
				return proto, fmt.Errorf("macro %q slot #%d: %w", m.Name, i, err)
			}
			slot := command.Slot{Kind: k, OneOf: s.OneOf}
			if s.Min != nil {
				slot.Min = *s.Min
			}
			if s.Max != nil {
				slot.Max = *s.Max
			}
			if len(s.Schema) > 0 {
				slot.Schema = &command.StringSchema{Raw: s.Schema}
			}
			proto.Exact[i] = slot
		}
	}

	body, err := bodyRequirement(m.Body)
	if err != nil {
		return proto, fmt.Errorf("macro %q: %w", m.Name, err)
	}
	proto.Body = body
	return proto, nil
}

// BuildReplacements compiles every MacroDef in p into a
// builtin.Replacement[T], instantiated for the caller's chosen code-unit
// type. Each returned handler still needs SetExecutor called once the
// Executor it will be registered with exists.
func BuildReplacements[T lexer.CodeUnit](p *Pack) ([]*builtin.Replacement[T], error) {
	out := make([]*builtin.Replacement[T], 0, len(p.Macros))
	for _, m := range p.Macros {
		before, err := builtin.ParseTemplate(m.Name, m.Before)
		if err != nil {
			return nil, err
		}
		after, err := builtin.ParseTemplate(m.Name, m.After)
		if err != nil {
			return nil, err
		}
		proto, err := buildPrototype(m)
		if err != nil {
			return nil, err
		}
		r, err := builtin.NewReplacement[T](m.Name, before, after, proto)
		if err != nil {
			return nil, err
		}
		r.Summary = m.Summary
		r.Version = m.Version
		if err := r.Descriptor().Validate(); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
