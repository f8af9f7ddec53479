package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

func TestDartMarkerMarkUnmark(t *testing.T) {
	darts, err := dart.NewContainer(2)
	require.NoError(t, err)
	d0 := darts.NewDart()
	d1 := darts.NewDart()

	m := AcquireDartMarker(darts)
	defer m.Release()

	assert.False(t, m.IsMarked(d0))
	m.Mark(d0)
	assert.True(t, m.IsMarked(d0))
	assert.False(t, m.IsMarked(d1))

	m.Unmark(d0)
	assert.False(t, m.IsMarked(d0))
}

func TestReleasedMarkerComesBackClean(t *testing.T) {
	darts, err := dart.NewContainer(1)
	require.NoError(t, err)
	d := darts.NewDart()

	m := AcquireDartMarker(darts)
	m.Mark(d)
	m.Release()

	again := AcquireDartMarker(darts)
	defer again.Release()
	assert.False(t, again.IsMarked(d), "a pooled column must be cleared between loans")
}

func TestCellMarkerTracksSlots(t *testing.T) {
	cells := container.NewWithChunkSize(32)
	s0, err := cells.InsertLines(1)
	require.NoError(t, err)

	m := AcquireCellMarker[orbit.Vertex](cells)
	defer m.Release()

	m.Mark(s0)
	assert.True(t, m.IsMarked(s0))
	m.Unmark(s0)
	assert.False(t, m.IsMarked(s0))
}
