// Package regions provides the abstract interval-map container the
// region-properties command definition annotates output spans with.
// spec.md treats this container as an external collaborator ("an abstract
// interval map"); this package supplies a minimal concrete implementation
// so the command kit and its tests have something to exercise, grounded on
// the same begin/end nesting the original source's
// utils::containers::regions<T> exposes (region_properties::on_begin /
// on_end in commands_definitions.h).
package regions

import "sort"

// Map[V] is a sorted list of (offset, value) breakpoints: the value in
// effect at a given output offset is the value of the last breakpoint at or
// before that offset. A freshly constructed Map has no breakpoints and
// reports the zero value of V everywhere.
type Map[V any] struct {
	offsets []int
	values  []V
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{}
}

// At returns the value in effect at offset.
func (m *Map[V]) At(offset int) V {
	i := sort.Search(len(m.offsets), func(i int) bool { return m.offsets[i] > offset })
	if i == 0 {
		var zero V
		return zero
	}
	return m.values[i-1]
}

// Add records that value takes effect starting at offset. Breakpoints are
// kept sorted by offset; adding at an offset already present replaces that
// breakpoint's value (matching append-only, monotonically increasing
// offsets that on_begin/on_end produce in practice).
func (m *Map[V]) Add(offset int, value V) {
	i := sort.Search(len(m.offsets), func(i int) bool { return m.offsets[i] >= offset })
	if i < len(m.offsets) && m.offsets[i] == offset {
		m.values[i] = value
		return
	}
	m.offsets = append(m.offsets, 0)
	m.values = append(m.values, value)
	copy(m.offsets[i+1:], m.offsets[i:])
	copy(m.values[i+1:], m.values[i:])
	m.offsets[i] = offset
	m.values[i] = value
}

// Breakpoints returns the (offset, value) pairs in ascending offset order,
// for inspection (e.g. cmd/markupctl's --regions output).
func (m *Map[V]) Breakpoints() []struct {
	Offset int
	Value  V
} {
	out := make([]struct {
		Offset int
		Value  V
	}, len(m.offsets))
	for i := range m.offsets {
		out[i].Offset = m.offsets[i]
		out[i].Value = m.values[i]
	}
	return out
}
