package marker

import "github.com/cgogn-go/cmaps/dart"

// DartMarker tracks a visited/unvisited bit per dart, for traversals
// that must not revisit a dart already processed (e.g. a breadth-first
// walk collecting every dart of a connected component).
type DartMarker struct {
	darts     *dart.Container
	chunkSize int
	col       interface {
		Get(uint32) bool
		SetTrue(uint32)
		SetFalse(uint32)
	}
	release func()
}

func chunkCountFor(chunkSize int, nbMax uint32) int {
	if nbMax == 0 {
		return 0
	}
	return int((nbMax-1))/chunkSize + 1
}

// AcquireDartMarker borrows a marker column sized to darts' current
// capacity, zeroed on loan.
func AcquireDartMarker(darts *dart.Container) *DartMarker {
	chunkSize := darts.Store().ChunkSize()
	nbChunks := chunkCountFor(chunkSize, darts.NbMax())
	col := globalPool.acquire(chunkSize, nbChunks)
	return &DartMarker{
		darts:     darts,
		chunkSize: chunkSize,
		col:       col,
		release:   func() { globalPool.release(chunkSize, col) },
	}
}

// Mark flags d as visited.
func (m *DartMarker) Mark(d dart.Dart) { m.col.SetTrue(uint32(d)) }

// Unmark clears d's visited flag.
func (m *DartMarker) Unmark(d dart.Dart) { m.col.SetFalse(uint32(d)) }

// IsMarked reports whether d has been marked.
func (m *DartMarker) IsMarked(d dart.Dart) bool { return m.col.Get(uint32(d)) }

// Release returns the backing column to the pool. Callers should defer
// this immediately after AcquireDartMarker.
func (m *DartMarker) Release() { m.release() }
