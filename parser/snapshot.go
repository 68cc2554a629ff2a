package parser

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/opal-lang/markup/lexer"
)

// NodeSnapshot is a portable, byte-offset-free shape of one tree node: a
// command's name, its parameter text, and its children, or a raw-text leaf.
// Unlike Command/Element, it carries no lexer.Position/Range, so two trees
// parsed from different input buffers but with the same logical shape
// produce byte-identical snapshots — the property golden-file regression
// tests need.
type NodeSnapshot struct {
	Name       string         `cbor:"name,omitempty"`
	Parameters []string       `cbor:"params,omitempty"`
	Children   []NodeSnapshot `cbor:"children,omitempty"`
	Raw        string         `cbor:"raw,omitempty"`
	IsRaw      bool           `cbor:"isRaw,omitempty"`
}

// Snapshot walks cmd into its portable NodeSnapshot shape.
func Snapshot[T lexer.CodeUnit](cmd *Command[T]) NodeSnapshot {
	n := NodeSnapshot{Name: cmd.Name.String()}
	for _, p := range cmd.Parameters {
		n.Parameters = append(n.Parameters, p.String())
	}
	for _, el := range cmd.Children {
		if el.IsRaw {
			n.Children = append(n.Children, NodeSnapshot{IsRaw: true, Raw: el.Raw.String()})
			continue
		}
		n.Children = append(n.Children, Snapshot(el.Command))
	}
	return n
}

var snapshotEncMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// MarshalBinary encodes the snapshot deterministically (canonical CBOR: sorted
// map keys, shortest-form integers), suitable for golden-file comparison,
// the way core/planfmt/canonical.go's CanonicalPlan.MarshalBinary does for
// its own plan shapes.
func (n NodeSnapshot) MarshalBinary() ([]byte, error) {
	return snapshotEncMode.Marshal(n)
}

// UnmarshalBinary decodes a snapshot previously produced by MarshalBinary.
func (n *NodeSnapshot) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, n)
}
