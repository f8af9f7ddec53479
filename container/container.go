package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/uuid"

	"github.com/cgogn-go/cmaps/cmaperr"
	"github.com/cgogn-go/cmaps/internal/cmaplog"
)

const freeFlag = uint32(1) << 31

// Container is a row-indexed set of named, typed columns sharing one
// free list and refcount column. A free slot's refcount word doubles as
// its next-free link, tagged with the high bit; slots are never reused
// while still referenced, and RemoveLine only returns a slot to the
// free list once its refcount reaches zero.
type Container struct {
	id        uuid.UUID
	chunkSize int

	columns map[string]Column
	order   []string // insertion order, for deterministic Save

	refcount *ChunkArray[uint32]
	nbUsed   int
	nbMax    uint32 // one past the highest slot ever handed out
	freeHead uint32
	hasFree  bool
}

// New creates an empty container with the default chunk size.
func New() *Container {
	return NewWithChunkSize(ChunkSize)
}

// NewWithChunkSize creates an empty container whose columns use chunkSize
// elements per chunk. chunkSize should be a power of two no smaller
// than 32 for the bit-packed BoolColumn specialization to word-align
// cleanly; this is a caller contract, not a runtime-enforced invariant
// (sizes below 32 like 4 or 8 are still accepted, used by this
// package's own tests to exercise multi-chunk behavior by hand).
func NewWithChunkSize(chunkSize int) *Container {
	return &Container{
		id:        uuid.New(),
		chunkSize: chunkSize,
		columns:   make(map[string]Column),
		refcount:  NewChunkArray[uint32](chunkSize, "refcount"),
	}
}

// ID uniquely identifies this container.
func (c *Container) ID() uuid.UUID { return c.id }

// ChunkSize reports the element count of one chunk in this container.
func (c *Container) ChunkSize() int { return c.chunkSize }

func (c *Container) grow() {
	c.refcount.AddChunk()
	for _, name := range c.order {
		c.columns[name].AddChunk()
	}
}

// AddAttribute registers a new column of type T under name. It returns
// cmaperr.ErrNameInUse if name is already taken.
func AddAttribute[T any](c *Container, name string) (*ChunkArray[T], error) {
	if _, exists := c.columns[name]; exists {
		return nil, fmt.Errorf("%w: %q", cmaperr.ErrNameInUse, name)
	}
	var zero T
	col := NewChunkArray[T](c.chunkSize, fmt.Sprintf("%T", zero))
	col.SetNbChunks(c.refcount.NbChunks())
	c.columns[name] = col
	c.order = append(c.order, name)
	return col, nil
}

// AddBoolAttribute registers a new bit-packed boolean column under name.
func AddBoolAttribute(c *Container, name string) (*BoolColumn, error) {
	if _, exists := c.columns[name]; exists {
		return nil, fmt.Errorf("%w: %q", cmaperr.ErrNameInUse, name)
	}
	col := NewBoolColumn(c.chunkSize)
	col.SetNbChunks(c.refcount.NbChunks())
	c.columns[name] = col
	c.order = append(c.order, name)
	return col, nil
}

// RemoveAttribute drops the column registered under name.
func (c *Container) RemoveAttribute(name string) error {
	if _, exists := c.columns[name]; !exists {
		return fmt.Errorf("%w: %q", cmaperr.ErrMissing, name)
	}
	delete(c.columns, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetAttribute returns the column registered under name, failing if it
// does not exist or was registered with a different element type.
func GetAttribute[T any](c *Container, name string) (*ChunkArray[T], error) {
	col, exists := c.columns[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", cmaperr.ErrMissing, name)
	}
	typed, ok := col.(*ChunkArray[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %q is %s, not %T", cmaperr.ErrTypeMismatch, name, col.elemTypeTag(), zero)
	}
	return typed, nil
}

// GetBoolAttribute returns the bit-packed boolean column registered
// under name.
func (c *Container) GetBoolAttribute(name string) (*BoolColumn, error) {
	col, exists := c.columns[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", cmaperr.ErrMissing, name)
	}
	typed, ok := col.(*BoolColumn)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not bool", cmaperr.ErrTypeMismatch, name, col.elemTypeTag())
	}
	return typed, nil
}

// GetAttributeForceType reinterprets the column stored under name as
// holding NewT instead of its registered OldT, succeeding only when the
// two types have identical binary size — e.g. viewing a float32 column
// as its raw uint32 bits. The caller asserts layout compatibility;
// anything beyond the size check is on them.
func GetAttributeForceType[NewT, OldT any](c *Container, name string) (*ChunkArray[NewT], error) {
	old, err := GetAttribute[OldT](c, name)
	if err != nil {
		return nil, err
	}
	var zeroOld OldT
	var zeroNew NewT
	if sizeOf(zeroOld) != sizeOf(zeroNew) {
		return nil, fmt.Errorf("%w: %q is %d bytes, requested type is %d bytes",
			cmaperr.ErrTypeSizeMismatch, name, sizeOf(zeroOld), sizeOf(zeroNew))
	}
	reinterpreted := NewChunkArray[NewT](c.chunkSize, fmt.Sprintf("%T", zeroNew))
	reinterpreted.chunks = make([][]NewT, len(old.chunks))
	for i, chunk := range old.chunks {
		reinterpreted.chunks[i] = unsafeReinterpretSlice[OldT, NewT](chunk)
	}
	c.columns[name] = reinterpreted
	return reinterpreted, nil
}

// InsertLines allocates n consecutive slots and returns the first: the
// caller addresses the run as first..first+n-1. A single slot reuses
// the free-list head when one is available; a longer run reuses the
// head only when it starts a run of n consecutive free slots, and
// otherwise extends the container past its high-water mark. Each slot
// comes back with refcount 1 and every column's element reset to its
// default.
func (c *Container) InsertLines(n int) (uint32, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cmaps: InsertLines requires n > 0, got %d", n)
	}
	if n == 1 && c.hasFree {
		slot := c.freeHead
		next := c.refcount.Get(slot) &^ freeFlag
		if next == slot {
			c.hasFree = false
		} else {
			c.freeHead = next
		}
		c.initLines(slot, 1)
		return slot, nil
	}
	if first, ok := c.takeFreeRun(n); ok {
		c.initLines(first, n)
		return first, nil
	}
	first := c.nbMax
	for c.nbMax+uint32(n) > uint32(c.refcount.Capacity()) {
		c.grow()
	}
	c.nbMax += uint32(n)
	c.initLines(first, n)
	return first, nil
}

func (c *Container) initLines(first uint32, n int) {
	for i := 0; i < n; i++ {
		slot := first + uint32(i)
		c.refcount.Set(slot, 1)
		for _, name := range c.order {
			c.columns[name].InitElt(slot)
		}
		c.nbUsed++
	}
}

// takeFreeRun claims freeHead..freeHead+n-1 when every slot in that
// range is free, relinking the rest of the free list around them.
func (c *Container) takeFreeRun(n int) (uint32, bool) {
	if !c.hasFree {
		return 0, false
	}
	head := c.freeHead
	for i := uint32(0); i < uint32(n); i++ {
		slot := head + i
		if slot >= c.nbMax || c.refcount.Get(slot)&freeFlag == 0 {
			return 0, false
		}
	}
	var keep []uint32
	cur := c.freeHead
	for {
		if cur < head || cur >= head+uint32(n) {
			keep = append(keep, cur)
		}
		next := c.refcount.Get(cur) &^ freeFlag
		if next == cur {
			break
		}
		cur = next
	}
	c.hasFree = false
	for i := len(keep) - 1; i >= 0; i-- {
		c.pushFree(keep[i])
	}
	return head, true
}

func (c *Container) pushFree(i uint32) {
	if c.hasFree {
		c.refcount.Set(i, c.freeHead|freeFlag)
	} else {
		c.refcount.Set(i, i|freeFlag)
	}
	c.freeHead = i
	c.hasFree = true
}

// CopyLine copies every registered column's value at src into dst.
// Refcounts are left untouched; both slots must be live.
func (c *Container) CopyLine(dst, src uint32) {
	for _, name := range c.order {
		c.columns[name].CopyElt(dst, src)
	}
}

// RefCount reports how many references slot i currently holds.
func (c *Container) RefCount(i uint32) uint32 {
	return c.refcount.Get(i) &^ freeFlag
}

// RefUp increments slot i's reference count.
func (c *Container) RefUp(i uint32) {
	c.refcount.Set(i, c.refcount.Get(i)+1)
}

// RemoveLine decrements slot i's reference count, returning it to the
// free list once the count reaches zero.
func (c *Container) RemoveLine(i uint32) error {
	rc := c.refcount.Get(i)
	if rc&freeFlag != 0 || rc == 0 {
		return fmt.Errorf("%w: slot %d is already free", cmaperr.ErrSlotOutOfRange, i)
	}
	rc--
	if rc > 0 {
		c.refcount.Set(i, rc)
		return nil
	}
	c.pushFree(i)
	c.nbUsed--
	return nil
}

// NbElements reports the number of live (non-free) slots.
func (c *Container) NbElements() int { return c.nbUsed }

// NbMax reports one past the highest slot ever handed out; iterating
// [0, NbMax) and skipping free slots visits every live element.
func (c *Container) NbMax() uint32 { return c.nbMax }

// IsFree reports whether slot i is on the free list rather than live.
func (c *Container) IsFree(i uint32) bool {
	return i >= c.nbMax || c.refcount.Get(i)&freeFlag != 0
}

// LiveBitmap returns a bitmap of every currently live slot, for
// diagnostics.
func (c *Container) LiveBitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i := uint32(0); i < c.nbMax; i++ {
		if !c.IsFree(i) {
			bm.Add(i)
		}
	}
	return bm
}

// Compact walks every live slot down to the lowest free indices,
// returning the slot remap (oldSlot -> newSlot) so callers (the dart
// container's embedding columns, in particular) can rewrite any
// out-of-band slot references they hold. Only slots that actually moved
// appear in the returned map.
func (c *Container) Compact() map[uint32]uint32 {
	before := c.nbMax
	remap := make(map[uint32]uint32)
	write := uint32(0)
	for read := uint32(0); read < c.nbMax; read++ {
		if c.IsFree(read) {
			continue
		}
		if read != write {
			for _, name := range c.order {
				c.columns[name].CopyElt(write, read)
			}
			c.refcount.Set(write, c.refcount.Get(read))
			remap[read] = write
		}
		write++
	}
	c.nbMax = write
	c.hasFree = false
	requiredChunks := ceilDiv(int(write), c.chunkSize)
	c.refcount.SetNbChunks(requiredChunks)
	for _, name := range c.order {
		c.columns[name].SetNbChunks(requiredChunks)
	}
	if write != before {
		cmaplog.Compacted("attribute", int(before), int(write))
	}
	return remap
}

// Save writes the container's refcount column, attribute table of
// contents, and every registered column, in registration order.
func (c *Container) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(c.nbMax)); err != nil {
		return fmt.Errorf("container: write nbMax: %w", err)
	}
	if err := c.refcount.Save(w, c.nbMax); err != nil {
		return fmt.Errorf("container: write refcount column: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.order))); err != nil {
		return fmt.Errorf("container: write attribute count: %w", err)
	}
	for _, name := range c.order {
		if err := writeName(w, name); err != nil {
			return err
		}
		if err := writeName(w, c.columns[name].elemTypeTag()); err != nil {
			return err
		}
		if err := c.columns[name].Save(w, c.nbMax); err != nil {
			return fmt.Errorf("container: write column %q: %w", name, err)
		}
	}
	return nil
}

// Load restores a container previously written by Save. Columns must
// already be registered (via AddAttribute/AddBoolAttribute) with
// matching names and types before calling Load; a stored column with no
// registered counterpart fails the load with cmaperr.ErrMissing.
//
// The incoming data is staged in cloned columns and only committed once
// the whole stream has been read, so any failure — version mismatch,
// truncation, unknown column — leaves the container exactly as it was.
func (c *Container) Load(r io.Reader) error {
	var nbMax uint32
	if err := binary.Read(r, binary.LittleEndian, &nbMax); err != nil {
		return fmt.Errorf("container: read nbMax: %w", err)
	}
	refScratch := c.refcount.clone()
	ok, err := refScratch.Load(r)
	if err != nil {
		return fmt.Errorf("container: read refcount column: %w", err)
	}
	if !ok {
		return cmaperr.ErrIoVersionMismatch
	}

	var nbAttrs uint32
	if err := binary.Read(r, binary.LittleEndian, &nbAttrs); err != nil {
		return fmt.Errorf("container: read attribute count: %w", err)
	}
	scratch := make(map[string]Column, nbAttrs)
	for a := uint32(0); a < nbAttrs; a++ {
		name, err := readName(r)
		if err != nil {
			return err
		}
		if _, err := readName(r); err != nil { // stored type tag, not checked: the column's Load checks only the chunk byte size
			return err
		}
		col, exists := c.columns[name]
		if !exists {
			return fmt.Errorf("%w: stored column %q not registered before Load", cmaperr.ErrMissing, name)
		}
		sc := col.clone()
		ok, err := sc.Load(r)
		if err != nil {
			return fmt.Errorf("container: read column %q: %w", name, err)
		}
		if !ok {
			return fmt.Errorf("%w: column %q", cmaperr.ErrIoVersionMismatch, name)
		}
		scratch[name] = sc
	}

	// Commit. replaceFrom keeps each registered column's identity, so
	// pointers handed out by AddAttribute stay valid across a reload.
	c.refcount.replaceFrom(refScratch)
	for name, sc := range scratch {
		c.columns[name].replaceFrom(sc)
	}
	c.nbMax = nbMax
	// The stored free-list links are chained in whatever order slots
	// were freed; relink the free slots from scratch so the restored
	// head reaches every one of them, lowest slot first.
	c.hasFree = false
	c.nbUsed = 0
	for i := nbMax; i > 0; i-- {
		slot := i - 1
		if c.refcount.Get(slot)&freeFlag != 0 {
			c.pushFree(slot)
		} else {
			c.nbUsed++
		}
	}
	// A registered column absent from the stream still has to match the
	// restored capacity.
	for _, name := range c.order {
		if col := c.columns[name]; col.NbChunks() != c.refcount.NbChunks() {
			col.SetNbChunks(c.refcount.NbChunks())
		}
	}
	return nil
}

func writeName(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return fmt.Errorf("container: write name length: %w", err)
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("container: write name: %w", err)
	}
	return nil
}

func readName(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("container: read name length: %w", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: name: %v", cmaperr.ErrIoTruncated, err)
	}
	return string(buf), nil
}
