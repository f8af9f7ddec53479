// Package cmap implements 1-, 2-, and 3-dimensional combinatorial maps:
// the dart-and-φ topology layer combined with per-orbit embeddings into
// one consumer API (AddFace, sew/unsew, cell enumeration, typed cell
// attributes).
package cmap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"github.com/cgogn-go/cmaps/attribute"
	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/internal/cmaplog"
	"github.com/cgogn-go/cmaps/internal/embedding"
	"github.com/cgogn-go/cmaps/marker"
	"github.com/cgogn-go/cmaps/orbit"
)

// Cell is a handle to one cell of orbit O, carried as a single
// representative dart. Two Cells are the same cell iff their darts
// belong to the same O-orbit, not iff the darts are equal.
type Cell[O orbit.Tag] struct {
	D dart.Dart
}

type core struct {
	darts     *dart.Container
	dimension int
	cellOpts  container.Options
	tables    map[orbit.Kind]*embedding.Table
}

func newCore(dimension int) (*core, error) {
	return newCoreWithOptions(dimension, Options{})
}

func newCoreWithOptions(dimension int, opts Options) (*core, error) {
	opts.SetDefaults()
	cellOpts := container.Options{ChunkSize: opts.ChunkSize}
	darts, err := dart.NewContainerWithOptions(dimension, cellOpts)
	if err != nil {
		return nil, err
	}
	return &core{
		darts:     darts,
		dimension: dimension,
		cellOpts:  cellOpts,
		tables:    make(map[orbit.Kind]*embedding.Table),
	}, nil
}

// ID identifies the map's underlying dart container.
func (c *core) ID() uuid.UUID { return c.darts.ID() }

// NbDarts reports the number of live darts.
func (c *core) NbDarts() int { return c.darts.NbDarts() }

func (c *core) tableFor(kind orbit.Kind) *embedding.Table {
	t, ok := c.tables[kind]
	if !ok {
		t = embedding.New(kind, c.darts, c.cellOpts)
		c.tables[kind] = t
	}
	return t
}

func (c *core) walker(kind orbit.Kind) embedding.Walker {
	return withDarts(c.darts, c.dimension, kind)
}

// Phi1 returns the successor of d around its face.
func (c *core) Phi1(d dart.Dart) dart.Dart { return c.darts.Phi1(d) }

// Phi1Inv returns the predecessor of d around its face.
func (c *core) Phi1Inv(d dart.Dart) dart.Dart { return c.darts.Phi1Inv(d) }

// Phi2 returns d's image under the edge involution. Valid only for maps
// of dimension 2 and up.
func (c *core) Phi2(d dart.Dart) dart.Dart { return c.darts.Phi2(d) }

// Phi3 returns d's image under the volume involution. Valid only for
// dimension-3 maps.
func (c *core) Phi3(d dart.Dart) dart.Dart { return c.darts.Phi3(d) }

// ForeachDart visits every live dart until visit returns false.
func (c *core) ForeachDart(visit func(dart.Dart) bool) {
	for i := uint32(0); i < c.darts.NbMax(); i++ {
		if c.darts.IsFree(i) {
			continue
		}
		if !visit(dart.Dart(i)) {
			return
		}
	}
}

// foreachCellDarts visits one representative dart per orbit-kind cell,
// first-seen-wins under ascending dart order, using a transient
// DartMarker so a multi-dart cell is only reported once.
func (c *core) foreachCellDarts(kind orbit.Kind, visit func(dart.Dart) bool) {
	seen := c.NewDartMarker()
	defer seen.Release()
	walk := c.walker(kind)
	c.ForeachDart(func(d dart.Dart) bool {
		if seen.IsMarked(d) {
			return true
		}
		cont := true
		walk(d, func(v dart.Dart) bool {
			seen.Mark(v)
			return true
		})
		if !visit(d) {
			cont = false
		}
		return cont
	})
}

// AddFaceAttribute registers a named attribute on the Face orbit.
func AddFaceAttribute[T any](c *core, name string) (*attribute.Handle[orbit.Face, T], error) {
	return addCellAttribute[orbit.Face, T](c, orbit.KindFace, name)
}

// AddVertexAttribute registers a named attribute on the Vertex orbit.
func AddVertexAttribute[T any](c *core, name string) (*attribute.Handle[orbit.Vertex, T], error) {
	return addCellAttribute[orbit.Vertex, T](c, orbit.KindVertex, name)
}

// AddEdgeAttribute registers a named attribute on the Edge orbit.
func AddEdgeAttribute[T any](c *core, name string) (*attribute.Handle[orbit.Edge, T], error) {
	return addCellAttribute[orbit.Edge, T](c, orbit.KindEdge, name)
}

// AddVolumeAttribute registers a named attribute on the Volume orbit.
func AddVolumeAttribute[T any](c *core, name string) (*attribute.Handle[orbit.Volume, T], error) {
	return addCellAttribute[orbit.Volume, T](c, orbit.KindVolume, name)
}

func addCellAttribute[O orbit.Tag, T any](c *core, kind orbit.Kind, name string) (*attribute.Handle[O, T], error) {
	t := c.tableFor(kind)
	col, err := container.AddAttribute[T](t.Cells(), name)
	if err != nil {
		return nil, err
	}
	return attribute.NewHandle[O, T](name, t.Cells(), col, t.Resolver()), nil
}

// RemoveAttribute drops the named attribute column from orbit kind's
// cell container; every attribute.Handle previously returned for it
// becomes invalid.
func (c *core) RemoveAttribute(kind orbit.Kind, name string) error {
	return c.tableFor(kind).Cells().RemoveAttribute(name)
}

// NbCells reports the live count of orbit O's cells.
func NbCells[O orbit.Tag](c *core) int {
	return c.tableFor(orbit.KindOf[O]()).Cells().NbElements()
}

// GetEmbedding returns cell's underlying cell-slot index. The second
// return is false if the representative dart has never been embedded
// into orbit O.
func GetEmbedding[O orbit.Tag](c *core, cell Cell[O]) (uint32, bool) {
	return c.darts.EmbeddingOf(cell.D, orbit.KindOf[O]())
}

// addFace builds a closed φ1-cycle of n fresh darts and returns one of
// them, the CMap1/2/3-common primitive behind AddFace on each concrete
// map type.
func (c *core) addFace(n int) dart.Dart {
	if n <= 0 {
		return dart.NilDart
	}
	first := c.darts.NewDart()
	prev := first
	for i := 1; i < n; i++ {
		d := c.darts.NewDart()
		c.darts.Phi1Sew(prev, d)
		prev = d
	}
	return first
}

// embedNewFace stamps a freshly built, fully unsewn face with one Face
// cell plus a Vertex and an Edge cell per boundary dart; nothing is
// merged yet, that happens as the face gets sewn to its neighbors.
func (c *core) embedNewFace(d dart.Dart) {
	faceTable := c.tableFor(orbit.KindFace)
	vertexTable := c.tableFor(orbit.KindVertex)
	edgeTable := c.tableFor(orbit.KindEdge)
	vertexWalk := c.walker(orbit.KindVertex)
	edgeWalk := c.walker(orbit.KindEdge)
	faceTable.EmbedNewCell(d, c.walker(orbit.KindFace))
	it := d
	for {
		vertexTable.EmbedNewCell(it, vertexWalk)
		edgeTable.EmbedNewCell(it, edgeWalk)
		it = c.darts.Phi1(it)
		if it == d {
			return
		}
	}
}

// Codegree reports the length of the φ1 cycle containing d (a
// triangle's codegree is 3). In a 3-map this counts only d's side of
// the face, not the φ3-glued twin.
func (c *core) Codegree(d dart.Dart) int {
	n := 1
	for it := c.darts.Phi1(d); it != d; it = c.darts.Phi1(it) {
		n++
	}
	return n
}

// IsTriangle reports whether d's φ1 cycle has exactly three darts,
// walking at most three φ1 steps.
func (c *core) IsTriangle(d dart.Dart) bool {
	d1 := c.darts.Phi1(d)
	d2 := c.darts.Phi1(d1)
	return d1 != d && d2 != d && c.darts.Phi1(d2) == d
}

// ForeachIncidentVertex visits every vertex dart incident to the face
// containing d, one representative dart per incident vertex in φ1
// order around the face.
func (c *core) ForeachIncidentVertex(d dart.Dart, visit func(dart.Dart) bool) {
	it := d
	for {
		if !visit(it) {
			return
		}
		it = c.darts.Phi1(it)
		if it == d {
			return
		}
	}
}

var savedKindOrder = []orbit.Kind{orbit.KindVertex, orbit.KindEdge, orbit.KindFace, orbit.KindVolume}

// Save persists a one-word mask of which orbits have embedding tables,
// then the dart container (including every embedding indirection
// column), then each present orbit's cell attribute container, in a
// fixed Vertex, Edge, Face, Volume order.
func (c *core) Save(w io.Writer) error {
	var mask uint32
	for _, kind := range savedKindOrder {
		if _, ok := c.tables[kind]; ok {
			mask |= 1 << kind
		}
	}
	if err := binary.Write(w, binary.LittleEndian, mask); err != nil {
		return fmt.Errorf("cmap: save orbit mask: %w", err)
	}
	if err := c.darts.Save(w); err != nil {
		return fmt.Errorf("cmap: save darts: %w", err)
	}
	for _, kind := range savedKindOrder {
		t, ok := c.tables[kind]
		if !ok {
			continue
		}
		if err := t.Cells().Save(w); err != nil {
			return fmt.Errorf("cmap: save %s cells: %w", kind, err)
		}
	}
	return nil
}

// Load restores a map previously written by Save. The embedding tables
// named by the stored orbit mask are registered automatically; cell
// attribute columns beyond those must already be registered (via the
// same Add*Attribute calls used before Save) before calling Load.
func (c *core) Load(r io.Reader) error {
	var mask uint32
	if err := binary.Read(r, binary.LittleEndian, &mask); err != nil {
		return fmt.Errorf("cmap: load orbit mask: %w", err)
	}
	for _, kind := range savedKindOrder {
		if mask&(1<<kind) != 0 {
			c.tableFor(kind)
		}
	}
	if err := c.darts.Load(r); err != nil {
		return fmt.Errorf("cmap: load darts: %w", err)
	}
	for _, kind := range savedKindOrder {
		if mask&(1<<kind) == 0 {
			continue
		}
		if err := c.tableFor(kind).Cells().Load(r); err != nil {
			return fmt.Errorf("cmap: load %s cells: %w", kind, err)
		}
	}
	return nil
}

// CompactCells eliminates free slots from orbit kind's cell container
// and rebinds every dart embedding through the resulting remap, so
// callers never see a dangling cell slot after compaction.
func (c *core) CompactCells(kind orbit.Kind) {
	t, ok := c.tables[kind]
	if !ok {
		return
	}
	remap := t.Cells().Compact()
	if len(remap) == 0 {
		return
	}
	c.darts.RemapEmbeddings(kind, remap)
}

// SaveToFS persists the map to path on fs. Production code passes an
// osfs.Filesystem; tests pass a memfs.Filesystem so a round trip never
// touches disk.
func (c *core) SaveToFS(fs billy.Filesystem, path string) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("cmap: create %q: %w", path, err)
	}
	defer f.Close()
	if err := c.Save(f); err != nil {
		cmaplog.SaveFailed(path, err)
		return err
	}
	return f.Close()
}

// LoadFromFS restores a map previously written by SaveToFS. Attribute
// columns must already be registered before calling LoadFromFS.
func (c *core) LoadFromFS(fs billy.Filesystem, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("cmap: open %q: %w", path, err)
	}
	defer f.Close()
	if err := c.Load(f); err != nil {
		cmaplog.LoadFailed(path, err)
		return err
	}
	return nil
}

// NewDartMarker acquires a pooled DartMarker for traversals over this
// map's darts.
func (c *core) NewDartMarker() *marker.DartMarker { return marker.AcquireDartMarker(c.darts) }

// NewCellMarker acquires a pooled CellMarker over orbit O's cell slots.
func NewCellMarker[O orbit.Tag](c *core) *marker.CellMarker[O] {
	return marker.AcquireCellMarker[O](c.tableFor(orbit.KindOf[O]()).Cells())
}
