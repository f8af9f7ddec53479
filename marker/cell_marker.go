package marker

import (
	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/orbit"
)

// CellMarker tracks a visited/unvisited bit per cell slot for one orbit,
// e.g. avoiding revisiting a vertex already reached while iterating the
// vertices incident to a face. Parameterized by orbit tag O purely for
// compile-time safety at call sites; the backing column is a plain
// BoolColumn over the orbit's cell attribute container.
type CellMarker[O orbit.Tag] struct {
	chunkSize int
	col       *container.BoolColumn
	release   func()
}

// AcquireCellMarker borrows a marker column sized to cells' current
// capacity.
func AcquireCellMarker[O orbit.Tag](cells *container.Container) *CellMarker[O] {
	chunkSize := cells.ChunkSize()
	nbChunks := chunkCountFor(chunkSize, cells.NbMax())
	col := globalPool.acquire(chunkSize, nbChunks)
	return &CellMarker[O]{
		chunkSize: chunkSize,
		col:       col,
		release:   func() { globalPool.release(chunkSize, col) },
	}
}

// Mark flags the cell at slot as visited.
func (m *CellMarker[O]) Mark(slot uint32) { m.col.SetTrue(slot) }

// Unmark clears the cell at slot's visited flag.
func (m *CellMarker[O]) Unmark(slot uint32) { m.col.SetFalse(slot) }

// IsMarked reports whether the cell at slot has been marked.
func (m *CellMarker[O]) IsMarked(slot uint32) bool { return m.col.Get(slot) }

// Release returns the backing column to the pool.
func (m *CellMarker[O]) Release() { m.release() }
