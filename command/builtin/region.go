package builtin

import (
	"github.com/opal-lang/markup/command"
	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/parser"
	"github.com/opal-lang/markup/regions"
)

// RegionValueFunc computes the region value a RegionProperties handler
// annotates its span with, as a function of the invoking command —
// concrete subclasses in the original source override region_value; here
// that's a plain function field.
type RegionValueFunc[T lexer.CodeUnit, V any] func(cmd *parser.Command[T]) V

// RegionProperties extends output-body: on OnBegin it records the value in
// effect at the current output offset as previousValue and opens a new
// interval there with the handler-supplied value; on OnEnd it closes that
// interval by reopening previousValue at the (now later) output offset.
// Grounded on region_properties in commands_definitions.h.
type RegionProperties[T lexer.CodeUnit, V any] struct {
	appendBody[T]
	CommandName   string
	Regions       *regions.Map[V]
	Value         RegionValueFunc[T, V]
	previousValue V
}

func NewRegionProperties[T lexer.CodeUnit, V any](name string, out *Sink, regionMap *regions.Map[V], value RegionValueFunc[T, V]) *RegionProperties[T, V] {
	return &RegionProperties[T, V]{
		appendBody:  appendBody[T]{Out: out},
		CommandName: name,
		Regions:     regionMap,
		Value:       value,
	}
}

func (h *RegionProperties[T, V]) Name() string { return h.CommandName }

func (h *RegionProperties[T, V]) OnBegin(cmd *parser.Command[T]) error {
	if h.Regions != nil {
		offset := h.currentOffset()
		h.previousValue = h.Regions.At(offset)
		h.Regions.Add(offset, h.Value(cmd))
	}
	return nil
}

func (h *RegionProperties[T, V]) OnEnd(cmd *parser.Command[T]) error {
	if h.Regions != nil {
		h.Regions.Add(h.currentOffset(), h.previousValue)
	}
	return nil
}

func (h *RegionProperties[T, V]) currentOffset() int {
	if h.Out == nil {
		return 0
	}
	return h.Out.Len()
}
