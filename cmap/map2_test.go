package cmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

func TestBuildATriangleInCMap2(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	face := m.AddFace(3)
	assert.Equal(t, 3, m.Codegree(face.D))
	assert.True(t, m.IsTriangle(face.D))
	assert.Equal(t, 3, m.NbDarts())

	faces, vertices, edges := 0, 0, 0
	m.ForeachFace(func(Cell[orbit.Face]) bool { faces++; return true })
	m.ForeachVertex(func(Cell[orbit.Vertex]) bool { vertices++; return true })
	m.ForeachEdge(func(Cell[orbit.Edge]) bool { edges++; return true })
	assert.Equal(t, 1, faces)
	assert.Equal(t, 3, vertices)
	assert.Equal(t, 3, edges)
}

func TestGlueTwoTrianglesAlongOneEdge(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(f1.D, f2.D))

	edges := 0
	m.ForeachEdge(func(Cell[orbit.Edge]) bool { edges++; return true })
	// two triangles share exactly one edge once glued: 3 + 3 - 1.
	assert.Equal(t, 5, edges)

	vertices := 0
	m.ForeachVertex(func(Cell[orbit.Vertex]) bool { vertices++; return true })
	// the two endpoints of the shared edge are shared too: 3 + 3 - 2.
	assert.Equal(t, 4, vertices)
}

func TestSewFacesRejectsAlreadySewnDart(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(f1.D, f2.D))

	f3 := m.AddFace(3)
	assert.Error(t, m.SewFaces(f1.D, f3.D))
}

func TestUnsewFacesSplitsEdgeBack(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(f1.D, f2.D))
	require.NoError(t, m.UnsewFaces(f1.D))

	edges := 0
	m.ForeachEdge(func(Cell[orbit.Edge]) bool { edges++; return true })
	assert.Equal(t, 6, edges, "unsewing should split the shared edge back into two")
}

func TestNbCellsAndGetEmbedding(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	face := m.AddFace(3)
	assert.Equal(t, 1, NbCells[orbit.Face](m.core))
	assert.Equal(t, 3, NbCells[orbit.Vertex](m.core))

	_, ok := GetEmbedding(m.core, face)
	require.True(t, ok, "a freshly added face should already carry a Face embedding")

	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(face.D, f2.D))
	assert.Equal(t, 4, NbCells[orbit.Vertex](m.core))
	assert.Equal(t, 5, NbCells[orbit.Edge](m.core))
}

func TestRemoveAttributeInvalidatesHandle(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	h, err := AddVertexAttribute[int](m.core, "degree")
	require.NoError(t, err)
	assert.True(t, h.IsValid())

	require.NoError(t, m.core.RemoveAttribute(orbit.KindVertex, "degree"))
	assert.False(t, h.IsValid())
}

func TestAttributeWriteThroughHandle(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	h, err := AddVertexAttribute[string](m.core, "label")
	require.NoError(t, err)

	face := m.AddFace(3)
	var corners []uint32
	m.ForeachIncidentVertex(face.D, func(d dart.Dart) bool {
		corners = append(corners, uint32(d))
		return true
	})
	require.Len(t, corners, 3)

	for i, d := range corners {
		v, err := h.At(d)
		require.NoError(t, err)
		*v = letterFor(i)
	}
	for i, d := range corners {
		v, err := h.At(d)
		require.NoError(t, err)
		assert.Equal(t, letterFor(i), *v)
	}
}

func letterFor(i int) string { return string(rune('A' + i)) }

func TestSetAllContainerValuesReachesEveryVertex(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	h, err := AddVertexAttribute[float32](m.core, "x")
	require.NoError(t, err)

	face := m.AddFace(3)
	h.SetAllContainerValues(3.0)

	m.ForeachIncidentVertex(face.D, func(d dart.Dart) bool {
		v, err := h.At(uint32(d))
		require.NoError(t, err)
		assert.Equal(t, float32(3.0), *v)
		return true
	})

	seen := 0
	h.ForeachValue(func(slot uint32, v *float32) bool {
		seen++
		assert.Equal(t, float32(3.0), *v)
		return true
	})
	assert.Equal(t, 3, seen)
}

func TestSewThenUnsewRestoresCellCounts(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.Equal(t, 6, NbCells[orbit.Vertex](m.core))
	require.Equal(t, 6, NbCells[orbit.Edge](m.core))

	require.NoError(t, m.SewFaces(f1.D, f2.D))
	require.Equal(t, 4, NbCells[orbit.Vertex](m.core))
	require.Equal(t, 5, NbCells[orbit.Edge](m.core))

	require.NoError(t, m.UnsewFaces(f1.D))
	assert.Equal(t, 6, NbCells[orbit.Vertex](m.core))
	assert.Equal(t, 6, NbCells[orbit.Edge](m.core))
}

func TestUnsewFacesCopiesAttributeToSplitVertex(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)

	h, err := AddVertexAttribute[float32](m.core, "x")
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	d := f1.D
	e := f2.D

	v, err := h.At(uint32(d))
	require.NoError(t, err)
	*v = 2.5

	require.NoError(t, m.SewFaces(d, e))
	shared, err := h.At(uint32(m.Phi1(e)))
	require.NoError(t, err)
	require.Equal(t, float32(2.5), *shared, "the merged vertex reads the surviving value")

	require.NoError(t, m.UnsewFaces(d))

	keptSlot, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: d})
	require.True(t, ok)
	strandedSlot, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: m.Phi1(e)})
	require.True(t, ok)
	require.NotEqual(t, keptSlot, strandedSlot, "unsewing separates the two vertex cells again")

	kept, err := h.At(uint32(d))
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), *kept)
	stranded, err := h.At(uint32(m.Phi1(e)))
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), *stranded, "the split-off vertex carries a copy of the merged value")
}

func TestOrbitDartsShareOneEmbedding(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(f1.D, f2.D))

	m.ForeachVertex(func(c Cell[orbit.Vertex]) bool {
		want, ok := GetEmbedding(m.core, c)
		require.True(t, ok)
		m.walker(orbit.KindVertex)(c.D, func(d dart.Dart) bool {
			got, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: d})
			require.True(t, ok)
			assert.Equal(t, want, got, "darts %v and %v disagree on their vertex", c.D, d)
			return true
		})
		return true
	})
}

func TestCompactCellsRebindsEmbeddings(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	// sewing frees the merged vertex and edge slots, leaving holes
	require.NoError(t, m.SewFaces(f1.D, f2.D))

	m.CompactCells(orbit.KindVertex)
	require.Equal(t, 4, NbCells[orbit.Vertex](m.core))

	cont := m.tableFor(orbit.KindVertex).Cells()
	m.ForeachVertex(func(c Cell[orbit.Vertex]) bool {
		slot, ok := GetEmbedding(m.core, c)
		require.True(t, ok)
		assert.False(t, cont.IsFree(slot), "embedding should point at a live slot after compaction")
		return true
	})
}

func TestMapSaveLoadRoundTrip(t *testing.T) {
	m, err := NewMap2()
	require.NoError(t, err)
	m.AddFace(3)
	m.AddFace(4)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	loaded, err := NewMap2()
	require.NoError(t, err)
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, m.NbDarts(), loaded.NbDarts())
}
