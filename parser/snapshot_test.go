package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/markup/lexer"
)

func TestSnapshotMarshalIsDeterministicAcrossEquivalentInputs(t *testing.T) {
	a := mustParseSnapshot(t, []byte(`Hello \em(loud){World}!`))
	b := mustParseSnapshot(t, []byte(`Hello \em(loud){World}!`))

	aBytes, err := a.MarshalBinary()
	require.NoError(t, err)
	bBytes, err := b.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, aBytes, bBytes)
}

func TestSnapshotRoundTrips(t *testing.T) {
	orig := mustParseSnapshot(t, []byte(`before \em{mid} after`))
	data, err := orig.MarshalBinary()
	require.NoError(t, err)

	var got NodeSnapshot
	require.NoError(t, got.UnmarshalBinary(data))
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("snapshot round-trip changed tree shape (-want +got):\n%s", diff)
	}
}

// TestSnapshotShapeIgnoresSourcePositions is the golden-comparison case
// NodeSnapshot exists for: two inputs that differ only in whitespace inside
// the parameter list have the same logical tree shape and must snapshot
// equal, since NodeSnapshot carries no lexer.Position/Range.
func TestSnapshotShapeIgnoresSourcePositions(t *testing.T) {
	a := mustParseSnapshot(t, []byte(`\em(loud){Hi}`))
	b := mustParseSnapshot(t, []byte(`\em( loud ){Hi}`))

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("equivalent trees produced different shapes (-a +b):\n%s", diff)
	}
}

func mustParseSnapshot(t *testing.T, input []byte) NodeSnapshot {
	t.Helper()
	tok := lexer.NewBytes(input)
	p := New[byte]()
	require.NoError(t, p.ParseAll(tok))
	return Snapshot[byte](p.Root)
}
