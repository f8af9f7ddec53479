// Package attribute implements AttributeHandle<ORBIT,T>: a typed,
// orbit-tagged reference into a per-orbit attribute column, resolved
// from a cell via a slot-resolution function supplied by the owning map
// so this package never has to import cmap (which would cycle back
// through container and dart).
package attribute

import (
	"fmt"

	"github.com/cgogn-go/cmaps/cmaperr"
	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/orbit"
)

// Resolver maps a representative dart of some cell to the slot holding
// that cell's attribute data, or ok=false if the cell has never been
// embedded (e.g. a Map1 vertex, which AddFace never embeds).
type Resolver func(dart uint32) (slot uint32, ok bool)

// Handle is a typed view over one named attribute column for orbit O.
// At resolves a cell's representative dart to its slot before reading;
// AtSlot addresses a raw slot directly. The handle keeps the owning
// container and column name alongside the cached column pointer so
// IsValid can detect a RemoveAttribute that happened after this handle
// was issued.
type Handle[O orbit.Tag, T any] struct {
	name    string
	cont    *container.Container
	col     *container.ChunkArray[T]
	resolve Resolver
}

// NewHandle wraps col as a typed handle for orbit O, using resolve to
// translate a cell's representative dart into a slot.
func NewHandle[O orbit.Tag, T any](name string, cont *container.Container, col *container.ChunkArray[T], resolve Resolver) *Handle[O, T] {
	return &Handle[O, T]{name: name, cont: cont, col: col, resolve: resolve}
}

// Name reports the attribute's registered name.
func (h *Handle[O, T]) Name() string { return h.name }

// IsValid reports whether h still refers to a live column: false for a
// default-constructed Handle, and false once RemoveAttribute has
// dropped the column this handle was issued for (even if a
// differently-typed column was later re-added under the same name).
func (h *Handle[O, T]) IsValid() bool {
	if h.cont == nil {
		return false
	}
	current, err := container.GetAttribute[T](h.cont, h.name)
	return err == nil && current == h.col
}

// AtSlot returns a pointer to the value at a raw container slot,
// bypassing cell resolution, for callers that already hold a slot.
func (h *Handle[O, T]) AtSlot(slot uint32) *T { return h.col.At(slot) }

// At resolves dart to its orbit-O cell and returns a pointer to that
// cell's value, failing with cmaperr.ErrMissing if the cell has never
// been embedded.
func (h *Handle[O, T]) At(dart uint32) (*T, error) {
	slot, ok := h.resolve(dart)
	if !ok {
		return nil, fmt.Errorf("%w: dart %d has no %s embedding for attribute %q", cmaperr.ErrMissing, dart, orbit.KindOf[O](), h.name)
	}
	return h.col.At(slot), nil
}

// SetAllContainerValues assigns v to every currently live slot in the
// backing column, the bulk initializer for freshly-added attributes.
func (h *Handle[O, T]) SetAllContainerValues(v T) {
	for i := uint32(0); i < h.cont.NbMax(); i++ {
		if !h.cont.IsFree(i) {
			h.col.Set(i, v)
		}
	}
}

// ForeachValue visits every live slot's value in ascending slot order,
// skipping free-listed slots, until yield returns false. The iteration
// survives unrelated column additions and removals but is invalidated
// by InsertLines, RemoveLine, or Compact on the owning container.
func (h *Handle[O, T]) ForeachValue(yield func(slot uint32, v *T) bool) {
	for i := uint32(0); i < h.cont.NbMax(); i++ {
		if h.cont.IsFree(i) {
			continue
		}
		if !yield(i, h.col.At(i)) {
			return
		}
	}
}
