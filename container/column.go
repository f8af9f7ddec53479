// Package container implements chunked, slot-addressed attribute storage:
// a columnar container of typed, fixed-chunk-size columns with a
// refcount-backed free list, compaction, and a binary persistence format.
package container

import "io"

// ChunkSize is the default number of elements per chunk. Must stay a
// power of two ≥ 32; callers needing a different size pass it to
// NewWithChunkSize explicitly.
const ChunkSize = 4096

// Column is the tagged-variant interface every column implementation
// satisfies. Container stores columns behind this interface so it can
// hold heterogeneously-typed columns in one map.
type Column interface {
	// AddChunk appends one default-initialized chunk.
	AddChunk()
	// SetNbChunks grows or shrinks the chunk vector; shrinking frees the
	// trailing chunks. Existing indices into surviving chunks stay valid.
	SetNbChunks(n int)
	// NbChunks reports the current chunk count.
	NbChunks() int
	// Capacity is NbChunks() * chunk size.
	Capacity() int
	// InitElt resets slot i to the column's zero value.
	InitElt(i uint32)
	// CopyElt copies the value at src into dst.
	CopyElt(dst, src uint32)
	// SwapElt exchanges the values at i and j.
	SwapElt(i, j uint32)
	// Save writes the column's persistence format for the first nbLines
	// logical lines.
	Save(w io.Writer, nbLines uint32) error
	// Load restores a column previously written by Save. It returns
	// false (not an error) when the stored chunk byte size disagrees
	// with this column's current chunk size.
	Load(r io.Reader) (bool, error)
	// clone returns a new, empty column of the same concrete type and
	// chunk size. Load stages incoming data in clones so a mid-stream
	// failure leaves the registered columns untouched.
	clone() Column
	// replaceFrom adopts src's storage in place, keeping this column's
	// identity (and therefore every outstanding pointer to it) intact.
	// src must be the same concrete type, normally a loaded clone.
	replaceFrom(src Column)
	// elemTypeTag identifies the column's element type for the
	// persistence header and for GetAttribute's type check.
	elemTypeTag() string
}
