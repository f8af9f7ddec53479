package dart

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/cgogn-go/cmaps/cmaperr"
	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/orbit"
)

const (
	phi1Col    = "phi1"
	phi1InvCol = "phi1inv"
	phi2Col    = "phi2"
	phi3Col    = "phi3"
)

// Container stores one dart per slot of an underlying container.Container,
// together with the φ-permutation image columns and a lazily-registered
// embedding (dart→cell-slot) column per orbit. A fresh dart is a fixed
// point of every φ it has, an isolated 1-dart face/edge/volume that
// later sew operations splice into larger cycles.
type Container struct {
	Dimension int // 1, 2, or 3

	store *container.Container
	phi1  *container.ChunkArray[Dart]
	phi1i *container.ChunkArray[Dart]
	phi2  *container.ChunkArray[Dart]
	phi3  *container.ChunkArray[Dart]

	embeddings map[orbit.Kind]*container.ChunkArray[uint32]
}

// NewContainer creates an empty dart container for a map of the given
// dimension, using the default chunk size. Dimension must be 1, 2, or 3.
func NewContainer(dimension int) (*Container, error) {
	return NewContainerWithOptions(dimension, container.Options{})
}

// NewContainerWithOptions is NewContainer with an explicit
// container.Options, letting callers pick a non-default chunk size for
// the φ-permutation and embedding columns (cmap.Options.ChunkSize
// threads through to here).
func NewContainerWithOptions(dimension int, opts container.Options) (*Container, error) {
	if dimension < 1 || dimension > 3 {
		return nil, fmt.Errorf("cmaps: dart.NewContainer: dimension must be 1, 2, or 3, got %d", dimension)
	}
	store := container.NewWithOptions(opts)
	c := &Container{
		Dimension:  dimension,
		store:      store,
		embeddings: make(map[orbit.Kind]*container.ChunkArray[uint32]),
	}
	var err error
	if c.phi1, err = container.AddAttribute[Dart](store, phi1Col); err != nil {
		return nil, err
	}
	if c.phi1i, err = container.AddAttribute[Dart](store, phi1InvCol); err != nil {
		return nil, err
	}
	if dimension >= 2 {
		if c.phi2, err = container.AddAttribute[Dart](store, phi2Col); err != nil {
			return nil, err
		}
	}
	if dimension >= 3 {
		if c.phi3, err = container.AddAttribute[Dart](store, phi3Col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ID identifies the underlying container.
func (c *Container) ID() uuid.UUID { return c.store.ID() }

// Store exposes the underlying attribute container so callers can attach
// per-dart attributes (distinct from per-cell attributes, which live on
// the embedding layer's own containers).
func (c *Container) Store() *container.Container { return c.store }

// NewDart allocates a fresh dart, a fixed point of every φ it has and
// unembedded in every registered orbit.
func (c *Container) NewDart() Dart {
	slot, _ := c.store.InsertLines(1)
	d := Dart(slot)
	c.phi1.Set(slot, d)
	c.phi1i.Set(slot, d)
	if c.phi2 != nil {
		c.phi2.Set(slot, d)
	}
	if c.phi3 != nil {
		c.phi3.Set(slot, d)
	}
	for _, col := range c.embeddings {
		col.Set(slot, NilSlot)
	}
	return d
}

// DeleteDart removes d. The caller is responsible for having already
// unsewn d from any permutation it participates in beyond the trivial
// fixed-point cycle.
func (c *Container) DeleteDart(d Dart) error {
	if d.IsNil() {
		return cmaperr.ErrNilDart
	}
	return c.store.RemoveLine(uint32(d))
}

// NbDarts reports the number of live darts.
func (c *Container) NbDarts() int { return c.store.NbElements() }

// NbMax is one past the highest slot ever handed out; iterating [0, NbMax)
// and skipping free slots with IsFree visits every live dart.
func (c *Container) NbMax() uint32 { return c.store.NbMax() }

// IsFree reports whether slot i currently holds no live dart.
func (c *Container) IsFree(i uint32) bool { return c.store.IsFree(i) }

// Phi1 returns the successor of d around its face.
func (c *Container) Phi1(d Dart) Dart { return c.phi1.Get(uint32(d)) }

// Phi1Inv returns the predecessor of d around its face.
func (c *Container) Phi1Inv(d Dart) Dart { return c.phi1i.Get(uint32(d)) }

// Phi2 returns d's image under the edge involution. It panics if this
// container's dimension is 1; callers operating generically should check
// Dimension first.
func (c *Container) Phi2(d Dart) Dart { return c.phi2.Get(uint32(d)) }

// Phi3 returns d's image under the volume involution. Valid only for
// dimension-3 containers.
func (c *Container) Phi3(d Dart) Dart { return c.phi3.Get(uint32(d)) }

func (c *Container) setPhi1(d, img Dart)    { c.phi1.Set(uint32(d), img) }
func (c *Container) setPhi1Inv(d, img Dart) { c.phi1i.Set(uint32(d), img) }
func (c *Container) setPhi2(d, img Dart)    { c.phi2.Set(uint32(d), img) }
func (c *Container) setPhi3(d, img Dart)    { c.phi3.Set(uint32(d), img) }

// Phi1Sew splices the φ1 orbits of d and e together: the face cycle
// containing d and the one containing e are merged (or, if they were
// already the same cycle, split) at the point between d and e. This is
// the primitive addFace builds each face cycle with.
func (c *Container) Phi1Sew(d, e Dart) {
	dn := c.Phi1(d)
	en := c.Phi1(e)
	c.setPhi1(d, en)
	c.setPhi1(e, dn)
	c.setPhi1Inv(en, d)
	c.setPhi1Inv(dn, e)
}

// Phi1Unsew removes d from its φ1 cycle, leaving d as a fixed point and
// splicing the rest of the cycle back together.
func (c *Container) Phi1Unsew(d Dart) {
	dn := c.Phi1(d)
	dp := c.Phi1Inv(d)
	c.setPhi1(dp, dn)
	c.setPhi1Inv(dn, dp)
	c.setPhi1(d, d)
	c.setPhi1Inv(d, d)
}

// Phi2Sew links d and e as the two sides of one edge: φ2 becomes an
// involution exchanging them.
func (c *Container) Phi2Sew(d, e Dart) {
	c.setPhi2(d, e)
	c.setPhi2(e, d)
}

// Phi2Unsew detaches d from its φ2 partner, leaving both darts as φ2
// fixed points (boundary darts).
func (c *Container) Phi2Unsew(d Dart) {
	e := c.Phi2(d)
	c.setPhi2(d, d)
	c.setPhi2(e, e)
}

// Phi3Sew links d and e as the two faces of one shared polygon across a
// volume boundary, an involution exactly like Phi2Sew but at the next
// dimension up.
func (c *Container) Phi3Sew(d, e Dart) {
	c.setPhi3(d, e)
	c.setPhi3(e, d)
}

// Phi3Unsew detaches d from its φ3 partner.
func (c *Container) Phi3Unsew(d Dart) {
	e := c.Phi3(d)
	c.setPhi3(d, d)
	c.setPhi3(e, e)
}

// EnsureEmbedding registers the dart→cell-slot indirection column for
// kind if it doesn't already exist, returning it either way. The column
// is initialized to NilSlot (not yet embedded) for every live dart.
func (c *Container) EnsureEmbedding(kind orbit.Kind) *container.ChunkArray[uint32] {
	if col, ok := c.embeddings[kind]; ok {
		return col
	}
	name := "emb_" + kind.String()
	col, err := container.AddAttribute[uint32](c.store, name)
	if err != nil {
		col, _ = container.GetAttribute[uint32](c.store, name)
	} else {
		for i := uint32(0); i < c.NbMax(); i++ {
			if !c.IsFree(i) {
				col.Set(i, NilSlot)
			}
		}
	}
	c.embeddings[kind] = col
	return col
}

// NilSlot marks a dart as not yet assigned a cell slot for some orbit.
const NilSlot = ^uint32(0)

// EmbeddingOf returns d's cell slot for kind, or (0, false) if kind has
// no embedding column registered or d isn't embedded yet.
func (c *Container) EmbeddingOf(d Dart, kind orbit.Kind) (uint32, bool) {
	col, ok := c.embeddings[kind]
	if !ok {
		return 0, false
	}
	slot := col.Get(uint32(d))
	if slot == NilSlot {
		return 0, false
	}
	return slot, true
}

// SetEmbedding assigns d's cell slot for kind directly. Callers outside
// internal/embedding should normally go through the embedding layer's
// EmbedNewCell/Merge/Split instead of calling this.
func (c *Container) SetEmbedding(d Dart, kind orbit.Kind, slot uint32) {
	c.EnsureEmbedding(kind).Set(uint32(d), slot)
}

// RemapEmbeddings rewrites every live dart's cell slot for kind through
// remap (oldSlot -> newSlot), after the orbit's cell container has been
// compacted. Slots absent from remap did not move and are left alone.
func (c *Container) RemapEmbeddings(kind orbit.Kind, remap map[uint32]uint32) {
	col, ok := c.embeddings[kind]
	if !ok {
		return
	}
	for i := uint32(0); i < c.NbMax(); i++ {
		if c.IsFree(i) {
			continue
		}
		slot := col.Get(i)
		if slot == NilSlot {
			continue
		}
		if moved, ok := remap[slot]; ok {
			col.Set(i, moved)
		}
	}
}

// Save persists the dart container, including every registered
// embedding column.
func (c *Container) Save(w io.Writer) error { return c.store.Save(w) }

// Load restores a dart container previously written by Save. Embedding
// columns must already be registered via EnsureEmbedding before Load.
func (c *Container) Load(r io.Reader) error { return c.store.Load(r) }
