package command

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Descriptor holds metadata about a command definition beyond what's needed
// to execute it — a name, a one-line summary, and an optional semver
// version an embedder can use to detect a stale macro pack. Grounded on the
// teacher's core/decorator.Descriptor, trimmed to the fields this module
// actually needs (no Roles/Capabilities/TransportScope — those model the
// teacher's decorator execution model, which this engine has no analogue
// for).
type Descriptor struct {
	Name       string
	Summary    string
	Version    string
	Parameters ParametersKind
	Body       BodyRequirement
}

// Validate reports an error if Version is set but is not a valid semver
// string, using the same golang.org/x/mod/semver.IsValid check the
// teacher's core/types/validation.go applies to its "semver" format.
func (d Descriptor) Validate() error {
	if d.Version != "" && !semver.IsValid(d.Version) {
		return fmt.Errorf("command %q: version %q is not valid semver (expected a leading %q)", d.Name, d.Version, "v")
	}
	return nil
}

// DescriptorBuilder is a fluent constructor for Descriptor, mirroring the
// teacher's core/decorator.DescriptorBuilder shape.
type DescriptorBuilder struct {
	d Descriptor
}

func NewDescriptor(name string) *DescriptorBuilder {
	return &DescriptorBuilder{d: Descriptor{Name: name}}
}

func (b *DescriptorBuilder) Summary(s string) *DescriptorBuilder {
	b.d.Summary = s
	return b
}

func (b *DescriptorBuilder) Version(v string) *DescriptorBuilder {
	b.d.Version = v
	return b
}

func (b *DescriptorBuilder) Parameters(kind ParametersKind) *DescriptorBuilder {
	b.d.Parameters = kind
	return b
}

func (b *DescriptorBuilder) Body(req BodyRequirement) *DescriptorBuilder {
	b.d.Body = req
	return b
}

// Build finalizes the Descriptor, validating its Version if set. The
// Descriptor is returned even when validation fails, so a caller that
// wants to report the error itself (e.g. via its own Descriptor().Validate()
// call) still sees the offending Name/Version rather than a zero value.
func (b *DescriptorBuilder) Build() (Descriptor, error) {
	if err := b.d.Validate(); err != nil {
		return b.d, err
	}
	return b.d, nil
}
