package cmap

import (
	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

// Map1 is a 1-dimensional combinatorial map: a set of disjoint φ1-cycles
// (faces) with no gluing between them.
type Map1 struct{ *core }

// NewMap1 creates an empty 1-map.
func NewMap1() (*Map1, error) {
	c, err := newCore(1)
	if err != nil {
		return nil, err
	}
	return &Map1{core: c}, nil
}

// NewMap1WithOptions is NewMap1 with an explicit Options, e.g. a
// non-default chunk size for very large or very small maps.
func NewMap1WithOptions(opts Options) (*Map1, error) {
	c, err := newCoreWithOptions(1, opts)
	if err != nil {
		return nil, err
	}
	return &Map1{core: c}, nil
}

// AddFace creates a new n-sided face as an isolated φ1-cycle and embeds
// it as a fresh Face cell.
func (m *Map1) AddFace(n int) Cell[orbit.Face] {
	d := m.addFace(n)
	m.tableFor(orbit.KindFace).EmbedNewCell(d, m.walker(orbit.KindFace))
	return Cell[orbit.Face]{D: d}
}

// ForeachFace visits one representative dart per face.
func (m *Map1) ForeachFace(visit func(Cell[orbit.Face]) bool) {
	m.foreachCellDarts(orbit.KindFace, func(d dart.Dart) bool { return visit(Cell[orbit.Face]{D: d}) })
}
