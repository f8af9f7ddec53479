package cmap

import (
	"fmt"

	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

// Map2 is a 2-dimensional combinatorial map: φ1-cycles (faces) glued
// pairwise along boundary edges via the φ2 involution.
type Map2 struct{ *core }

// NewMap2 creates an empty 2-map.
func NewMap2() (*Map2, error) {
	c, err := newCore(2)
	if err != nil {
		return nil, err
	}
	return &Map2{core: c}, nil
}

// NewMap2WithOptions is NewMap2 with an explicit Options.
func NewMap2WithOptions(opts Options) (*Map2, error) {
	c, err := newCoreWithOptions(2, opts)
	if err != nil {
		return nil, err
	}
	return &Map2{core: c}, nil
}

// AddFace creates a new n-sided face, its boundary edges initially
// unsewn (φ2 fixed points), and embeds it as a fresh Face cell plus one
// fresh Vertex and Edge cell per boundary dart.
func (m *Map2) AddFace(n int) Cell[orbit.Face] {
	d := m.addFace(n)
	m.embedNewFace(d)
	return Cell[orbit.Face]{D: d}
}

// ForeachFace visits one representative dart per face.
func (m *Map2) ForeachFace(visit func(Cell[orbit.Face]) bool) {
	m.foreachCellDarts(orbit.KindFace, func(d dart.Dart) bool { return visit(Cell[orbit.Face]{D: d}) })
}

// ForeachVertex visits one representative dart per vertex.
func (m *Map2) ForeachVertex(visit func(Cell[orbit.Vertex]) bool) {
	m.foreachCellDarts(orbit.KindVertex, func(d dart.Dart) bool { return visit(Cell[orbit.Vertex]{D: d}) })
}

// ForeachEdge visits one representative dart per edge.
func (m *Map2) ForeachEdge(visit func(Cell[orbit.Edge]) bool) {
	m.foreachCellDarts(orbit.KindEdge, func(d dart.Dart) bool { return visit(Cell[orbit.Edge]{D: d}) })
}

// ForeachVolume visits one representative dart per connected component
// (the orbits of ⟨φ1,φ2⟩ in a 2-map).
func (m *Map2) ForeachVolume(visit func(Cell[orbit.Volume]) bool) {
	m.foreachCellDarts(orbit.KindVolume, func(d dart.Dart) bool { return visit(Cell[orbit.Volume]{D: d}) })
}

// SewFaces glues the boundary edge at d1 to the boundary edge at d2 via
// φ2, merging the Edge cell they now share and reconciling the two
// Vertex cells at each end. Both d1 and d2 must currently be φ2 fixed
// points (unsewn boundary darts); SewFaces returns an error otherwise.
func (m *Map2) SewFaces(d1, d2 dart.Dart) error {
	if m.darts.Phi2(d1) != d1 || m.darts.Phi2(d2) != d2 {
		return fmt.Errorf("cmap: SewFaces requires two unsewn boundary darts")
	}
	d1n := m.darts.Phi1(d1)
	d2n := m.darts.Phi1(d2)

	m.darts.Phi2Sew(d1, d2)

	edgeWalk := m.walker(orbit.KindEdge)
	m.tableFor(orbit.KindEdge).Merge(d1, d2, edgeWalk)

	vertexWalk := m.walker(orbit.KindVertex)
	m.tableFor(orbit.KindVertex).Merge(d1, d2n, vertexWalk)
	m.tableFor(orbit.KindVertex).Merge(d2, d1n, vertexWalk)
	return nil
}

// UnsewFaces detaches d's boundary edge from its φ2 partner, splitting
// the shared Edge cell back into two and reconciling the two Vertex
// cells at each end that may or may not remain merged depending on
// whether other edges still join them.
func (m *Map2) UnsewFaces(d dart.Dart) error {
	e := m.darts.Phi2(d)
	if e == d {
		return fmt.Errorf("cmap: UnsewFaces: dart is already unsewn")
	}

	edgeWalk := m.walker(orbit.KindEdge)
	vertexWalk := m.walker(orbit.KindVertex)
	// d's base vertex orbit also contains phi1(e), and e's contains
	// phi1(d): capturing both before the splice lets Split see which
	// darts were stranded on the far side afterward.
	previousVertexD := collectOrbit(m.darts, vertexWalk, d)
	previousVertexE := collectOrbit(m.darts, vertexWalk, e)

	m.darts.Phi2Unsew(d)

	m.tableFor(orbit.KindEdge).Split(d, []dart.Dart{d, e}, edgeWalk)
	m.tableFor(orbit.KindVertex).Split(d, previousVertexD, vertexWalk)
	m.tableFor(orbit.KindVertex).Split(e, previousVertexE, vertexWalk)
	return nil
}

func collectOrbit(darts *dart.Container, walk func(dart.Dart, func(dart.Dart) bool), start dart.Dart) []dart.Dart {
	var out []dart.Dart
	walk(start, func(d dart.Dart) bool {
		out = append(out, d)
		return true
	})
	return out
}
