package cmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgogn-go/cmaps/orbit"
)

func countFaces(m *Map3) int {
	n := 0
	m.ForeachFace(func(Cell[orbit.Face]) bool { n++; return true })
	return n
}

func countVolumes(m *Map3) int {
	n := 0
	m.ForeachVolume(func(Cell[orbit.Volume]) bool { n++; return true })
	return n
}

func TestGlueTwoTrianglesAlongOneEdgeInCMap3(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewFaces(f1.D, f2.D))

	edges := 0
	m.ForeachEdge(func(Cell[orbit.Edge]) bool { edges++; return true })
	assert.Equal(t, 5, edges)
}

func TestSewVolumesMergesFacesButNotVolumes(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	assert.Equal(t, 2, countFaces(m))
	assert.Equal(t, 2, countVolumes(m))

	require.NoError(t, m.SewVolumes(f1.D, f2.D))

	// the two boundary faces become one shared face between the volumes...
	assert.Equal(t, 1, countFaces(m))
	// ...but gluing two shells across a shared face never merges the
	// shells themselves into one volume cell.
	assert.Equal(t, 2, countVolumes(m))

	// each corner and each edge of the shared face is merged pairwise
	assert.Equal(t, 3, NbCells[orbit.Vertex](m.core))
	assert.Equal(t, 3, NbCells[orbit.Edge](m.core))
}

func TestSewVolumesKeepsEdgeEndpointsDistinct(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewVolumes(f1.D, f2.D))

	d := f1.D
	start, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: d})
	require.True(t, ok)
	end, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: m.darts.Phi1(d)})
	require.True(t, ok)
	assert.NotEqual(t, start, end, "gluing volumes must not collapse an edge's two endpoints")

	twin, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: m.darts.Phi1(m.darts.Phi3(d))})
	require.True(t, ok)
	assert.Equal(t, start, twin, "the twin face's matching corner shares the vertex")
}

func TestSewVolumesRejectsCodegreeMismatch(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(4)
	assert.Error(t, m.SewVolumes(f1.D, f2.D))
}

func TestSewVolumesRejectsAlreadySewnFace(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewVolumes(f1.D, f2.D))

	f3 := m.AddFace(3)
	assert.Error(t, m.SewVolumes(f1.D, f3.D))
}

func TestUnsewVolumesSplitsFaceBack(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	require.NoError(t, m.SewVolumes(f1.D, f2.D))
	require.NoError(t, m.UnsewVolumes(f1.D))

	assert.Equal(t, 2, countFaces(m))
	assert.Equal(t, 2, countVolumes(m))
	assert.Equal(t, 6, NbCells[orbit.Vertex](m.core))
	assert.Equal(t, 6, NbCells[orbit.Edge](m.core))
	assert.Equal(t, 2, NbCells[orbit.Face](m.core))
}

func TestUnsewVolumesCopiesAttributeToSplitVertex(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)

	h, err := AddVertexAttribute[float32](m.core, "x")
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	d := f1.D

	v, err := h.At(uint32(d))
	require.NoError(t, err)
	*v = 7.25

	require.NoError(t, m.SewVolumes(f1.D, f2.D))
	twin := m.Phi1(m.Phi3(d))
	shared, err := h.At(uint32(twin))
	require.NoError(t, err)
	require.Equal(t, float32(7.25), *shared, "the twin face's matching corner reads the shared value")

	require.NoError(t, m.UnsewVolumes(f1.D))

	keptSlot, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: d})
	require.True(t, ok)
	strandedSlot, ok := GetEmbedding(m.core, Cell[orbit.Vertex]{D: twin})
	require.True(t, ok)
	require.NotEqual(t, keptSlot, strandedSlot, "unsewing separates the corner cells again")

	stranded, err := h.At(uint32(twin))
	require.NoError(t, err)
	assert.Equal(t, float32(7.25), *stranded, "the detached volume's corner keeps a copy of the shared value")
}

func TestUnsewVolumesRejectsAlreadyUnsewnFace(t *testing.T) {
	m, err := NewMap3()
	require.NoError(t, err)
	f1 := m.AddFace(3)
	assert.Error(t, m.UnsewVolumes(f1.D))
}
