// Package embedding implements the per-orbit dart→cell-slot indirection
// layer: allocation of cell attribute slots, and the merge/split
// reconciliation that keeps embeddings consistent across sew/unsew.
// Kept internal because its Merge/Split entry points assume the caller
// (cmap) has already performed the φ-permutation splice and is calling
// back in to fix up embeddings — a sequencing contract that shouldn't be
// exposed outside the map implementations themselves.
package embedding

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/cgogn-go/cmaps/attribute"
	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/orbit"
)

// Walker enumerates every dart in the orbit represented by d, calling
// visit for each (including d itself) until visit returns false or the
// orbit is exhausted. Each map dimension supplies its own walker per
// orbit kind, since what generates an orbit (which φ's to follow)
// depends on both the orbit and the map's dimension.
type Walker func(d dart.Dart, visit func(dart.Dart) bool)

// Table owns one orbit's cell attribute storage and its dart→slot
// embedding column.
type Table struct {
	kind  orbit.Kind
	darts *dart.Container
	cells *container.Container
}

// New creates an embedding table for kind, backed by its own attribute
// container for cell data and darts' embedding column for indirection.
// cellOpts configures the cell container, so a map built with a
// non-default chunk size carries it through to its per-orbit storage.
func New(kind orbit.Kind, darts *dart.Container, cellOpts container.Options) *Table {
	darts.EnsureEmbedding(kind)
	return &Table{kind: kind, darts: darts, cells: container.NewWithOptions(cellOpts)}
}

// Kind reports which orbit this table embeds.
func (t *Table) Kind() orbit.Kind { return t.kind }

// Cells exposes the backing attribute container, for AddAttribute/
// GetAttribute calls made through the cmap-level API.
func (t *Table) Cells() *container.Container { return t.cells }

// Resolver returns the attribute.Resolver this table backs, translating
// a representative dart into its cell slot.
func (t *Table) Resolver() attribute.Resolver {
	return func(d uint32) (uint32, bool) {
		return t.darts.EmbeddingOf(dart.Dart(d), t.kind)
	}
}

// EmbedNewCell allocates a fresh cell slot and assigns it to every dart
// in d's orbit, for a cell that has never been embedded before (e.g.
// right after AddFace, before any sewing has had a chance to merge it
// with a neighboring cell).
func (t *Table) EmbedNewCell(d dart.Dart, walk Walker) uint32 {
	slot, _ := t.cells.InsertLines(1)
	walk(d, func(v dart.Dart) bool {
		t.darts.SetEmbedding(v, t.kind, slot)
		return true
	})
	return slot
}

// Merge reconciles embeddings after a sew operation joins the orbits
// containing d and e. When both cells were embedded the lower slot
// survives and the other is released; when only one was embedded it
// survives; a fresh slot is allocated only if neither was. The winning
// slot is written across the union of both orbits, which newOrbit must
// walk post-splice.
func (t *Table) Merge(d, e dart.Dart, newOrbit Walker) {
	winner, hasWinner := t.darts.EmbeddingOf(d, t.kind)
	loser, hasLoser := t.darts.EmbeddingOf(e, t.kind)
	switch {
	case !hasWinner && !hasLoser:
		t.EmbedNewCell(d, newOrbit)
		return
	case !hasWinner:
		winner = loser
		hasLoser = false
	case hasLoser && loser < winner:
		winner, loser = loser, winner
	}
	newOrbit(d, func(v dart.Dart) bool {
		t.darts.SetEmbedding(v, t.kind, winner)
		return true
	})
	if hasLoser && loser != winner {
		_ = t.cells.RemoveLine(loser)
	}
}

// Split reconciles embeddings after an unsew operation potentially
// divides one cell's orbit into two. It walks the orbit starting at d
// post-splice; any dart reachable from d keeps the existing slot, and
// any dart that used to share that slot but is no longer reachable gets
// a freshly allocated slot carrying a copy of the old attribute values.
// previousMembers must enumerate the full set of darts that held the old
// slot before the unsew (captured by the caller before splicing); newOrbit
// walks the post-splice orbit containing d.
func (t *Table) Split(d dart.Dart, previousMembers []dart.Dart, newOrbit Walker) {
	if len(previousMembers) == 0 {
		return
	}
	oldSlot, ok := t.darts.EmbeddingOf(previousMembers[0], t.kind)
	if !ok {
		return
	}
	reachable := roaring.New()
	newOrbit(d, func(v dart.Dart) bool {
		reachable.Add(uint32(v))
		return true
	})
	var stranded []dart.Dart
	for _, v := range previousMembers {
		if !reachable.Contains(uint32(v)) {
			stranded = append(stranded, v)
		}
	}
	if len(stranded) == 0 {
		return
	}
	newSlot, _ := t.cells.InsertLines(1)
	t.cells.CopyLine(newSlot, oldSlot)
	for _, v := range stranded {
		t.darts.SetEmbedding(v, t.kind, newSlot)
	}
}
