package cmap

import (
	"fmt"

	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

// Map3 is a 3-dimensional combinatorial map: Map2 volumes (closed shells
// of φ1/φ2-glued faces) additionally glued pairwise across shared
// boundary faces via the φ3 involution.
type Map3 struct{ *core }

// NewMap3 creates an empty 3-map.
func NewMap3() (*Map3, error) {
	c, err := newCore(3)
	if err != nil {
		return nil, err
	}
	return &Map3{core: c}, nil
}

// NewMap3WithOptions is NewMap3 with an explicit Options.
func NewMap3WithOptions(opts Options) (*Map3, error) {
	c, err := newCoreWithOptions(3, opts)
	if err != nil {
		return nil, err
	}
	return &Map3{core: c}, nil
}

// AddFace creates a new n-sided face, embedding Face, Vertex, and Edge
// cells exactly as Map2.AddFace does; it is the building block for
// constructing one volume's boundary before sewing faces together with
// SewFaces and closing the volume off from its neighbors with
// SewVolumes.
func (m *Map3) AddFace(n int) Cell[orbit.Face] {
	d := m.addFace(n)
	m.embedNewFace(d)
	return Cell[orbit.Face]{D: d}
}

// SewFaces glues two boundary edges within the same volume shell via
// φ2, exactly as Map2.SewFaces.
func (m *Map3) SewFaces(d1, d2 dart.Dart) error {
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

// SewVolumes glues the boundary face at d1 to the boundary face at d2
// via φ3, walking both face cycles in lockstep so each pair of matching
// boundary darts is φ3-sewn, and merges the Face, Edge, and Vertex cells
// each pair now shares. Both faces must have the same codegree and both
// d1 and d2 must currently be φ3 fixed points.
func (m *Map3) SewVolumes(d1, d2 dart.Dart) error {
	if m.darts.Phi3(d1) != d1 || m.darts.Phi3(d2) != d2 {
		return fmt.Errorf("cmap: SewVolumes requires two unsewn boundary faces")
	}
	n1, n2 := m.Codegree(d1), m.Codegree(d2)
	if n1 != n2 {
		return fmt.Errorf("cmap: SewVolumes: face codegrees differ (%d vs %d)", n1, n2)
	}

	faceWalk := m.walker(orbit.KindFace)
	edgeWalk := m.walker(orbit.KindEdge)
	vertexWalk := m.walker(orbit.KindVertex)
	faceTable := m.tableFor(orbit.KindFace)
	edgeTable := m.tableFor(orbit.KindEdge)
	vertexTable := m.tableFor(orbit.KindVertex)

	// Walk d2's face in reverse (φ1⁻¹) so corresponding darts line up
	// as they would if the second volume's face were seen from the
	// opposite side. b then runs against a's orientation: it shares a's
	// edge but is based at the far end, so the vertex that b shares is
	// phi1(a)'s, not a's.
	a, b := d1, d2
	for i := 0; i < n1; i++ {
		m.darts.Phi3Sew(a, b)
		edgeTable.Merge(a, b, edgeWalk)
		vertexTable.Merge(m.darts.Phi1(a), b, vertexWalk)
		a = m.darts.Phi1(a)
		b = m.darts.Phi1Inv(b)
	}
	faceTable.Merge(d1, d2, faceWalk)
	return nil
}

// UnsewFaces detaches d's boundary edge from its φ2 partner within a
// volume shell, exactly as Map2.UnsewFaces.
func (m *Map3) UnsewFaces(d dart.Dart) error {
	e := m.darts.Phi2(d)
	if e == d {
		return fmt.Errorf("cmap: UnsewFaces: dart is already unsewn")
	}

	edgeWalk := m.walker(orbit.KindEdge)
	vertexWalk := m.walker(orbit.KindVertex)
	// The edge orbit is closed under phi3 as well, so its pre-splice
	// membership has to be walked rather than assumed to be {d, e}.
	previousEdge := collectOrbit(m.darts, edgeWalk, d)
	previousVertexD := collectOrbit(m.darts, vertexWalk, d)
	previousVertexE := collectOrbit(m.darts, vertexWalk, e)

	m.darts.Phi2Unsew(d)

	m.tableFor(orbit.KindEdge).Split(d, previousEdge, edgeWalk)
	m.tableFor(orbit.KindVertex).Split(d, previousVertexD, vertexWalk)
	m.tableFor(orbit.KindVertex).Split(e, previousVertexE, vertexWalk)
	return nil
}

// UnsewVolumes detaches the boundary face at d from its φ3 partner,
// walking both face cycles in lockstep to unsew every matching dart
// pair and splitting the Face, Edge, and Vertex cells the two volumes
// had come to share.
func (m *Map3) UnsewVolumes(d dart.Dart) error {
	if m.darts.Phi3(d) == d {
		return fmt.Errorf("cmap: UnsewVolumes: face is already unsewn")
	}
	n := m.Codegree(d)

	faceWalk := m.walker(orbit.KindFace)
	edgeWalk := m.walker(orbit.KindEdge)
	vertexWalk := m.walker(orbit.KindVertex)
	faceTable := m.tableFor(orbit.KindFace)
	edgeTable := m.tableFor(orbit.KindEdge)
	vertexTable := m.tableFor(orbit.KindVertex)

	previousFace := collectOrbit(m.darts, faceWalk, d)

	var sides []dart.Dart
	for a, i := d, 0; i < n; a, i = m.darts.Phi1(a), i+1 {
		sides = append(sides, a)
	}

	var previousEdges, previousVerts [][]dart.Dart
	for _, a := range sides {
		previousEdges = append(previousEdges, collectOrbit(m.darts, edgeWalk, a))
		previousVerts = append(previousVerts, collectOrbit(m.darts, vertexWalk, a))
	}

	for _, a := range sides {
		m.darts.Phi3Unsew(a)
	}

	faceTable.Split(d, previousFace, faceWalk)
	for i, a := range sides {
		edgeTable.Split(a, previousEdges[i], edgeWalk)
		vertexTable.Split(a, previousVerts[i], vertexWalk)
	}
	return nil
}

// ForeachFace visits one representative dart per face.
func (m *Map3) ForeachFace(visit func(Cell[orbit.Face]) bool) {
	m.foreachCellDarts(orbit.KindFace, func(d dart.Dart) bool { return visit(Cell[orbit.Face]{D: d}) })
}

// ForeachVertex visits one representative dart per vertex.
func (m *Map3) ForeachVertex(visit func(Cell[orbit.Vertex]) bool) {
	m.foreachCellDarts(orbit.KindVertex, func(d dart.Dart) bool { return visit(Cell[orbit.Vertex]{D: d}) })
}

// ForeachEdge visits one representative dart per edge.
func (m *Map3) ForeachEdge(visit func(Cell[orbit.Edge]) bool) {
	m.foreachCellDarts(orbit.KindEdge, func(d dart.Dart) bool { return visit(Cell[orbit.Edge]{D: d}) })
}

// ForeachVolume visits one representative dart per volume.
func (m *Map3) ForeachVolume(visit func(Cell[orbit.Volume]) bool) {
	m.foreachCellDarts(orbit.KindVolume, func(d dart.Dart) bool { return visit(Cell[orbit.Volume]{D: d}) })
}
