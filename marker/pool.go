// Package marker implements DartMarker and CellMarker: scoped, pooled
// boolean columns used to track visited state during traversal.
// Acquire/Release brackets a marker's lifetime; callers pair Acquire
// with `defer m.Release()` so the backing column always returns to the
// pool.
package marker

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cgogn-go/cmaps/container"
	"github.com/cgogn-go/cmaps/internal/cmaplog"
)

// pool recycles released BoolColumns keyed by chunk size, so repeated
// marker acquire/release avoids reallocating the backing chunks.
type pool struct {
	mu    sync.Mutex
	byCap *lru.Cache[int, []*container.BoolColumn]
}

var globalPool = newPool()

func newPool() *pool {
	c, err := lru.New[int, []*container.BoolColumn](64)
	if err != nil {
		panic(err) // only fails for a non-positive size, which 64 never is
	}
	return &pool{byCap: c}
}

func (p *pool) acquire(chunkSize, nbChunks int) *container.BoolColumn {
	p.mu.Lock()
	defer p.mu.Unlock()
	if bucket, ok := p.byCap.Get(chunkSize); ok && len(bucket) > 0 {
		col := bucket[len(bucket)-1]
		p.byCap.Add(chunkSize, bucket[:len(bucket)-1])
		col.SetNbChunks(nbChunks)
		return col
	}
	cmaplog.PoolExhausted("marker", chunkSize)
	col := container.NewBoolColumn(chunkSize)
	col.SetNbChunks(nbChunks)
	return col
}

func (p *pool) release(chunkSize int, col *container.BoolColumn) {
	col.ClearAllDirty()
	p.mu.Lock()
	defer p.mu.Unlock()
	bucket, _ := p.byCap.Get(chunkSize)
	bucket = append(bucket, col)
	p.byCap.Add(chunkSize, bucket)
}
