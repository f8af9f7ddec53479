package cmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgogn-go/cmaps/orbit"
)

func TestBuildDisjointFacesInCMap1(t *testing.T) {
	m, err := NewMap1()
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(4)
	assert.Equal(t, 3, m.Codegree(f1.D))
	assert.Equal(t, 4, m.Codegree(f2.D))
	assert.Equal(t, 7, m.NbDarts())

	faces := 0
	m.ForeachFace(func(Cell[orbit.Face]) bool { faces++; return true })
	assert.Equal(t, 2, faces)
}

func TestMap1FacesDoNotShareDarts(t *testing.T) {
	m, err := NewMap1WithOptions(Options{ChunkSize: 8})
	require.NoError(t, err)

	f1 := m.AddFace(3)
	f2 := m.AddFace(3)
	assert.NotEqual(t, f1.D, f2.D)
	assert.Equal(t, 3, m.Codegree(f1.D))
	assert.Equal(t, 3, m.Codegree(f2.D))
}
