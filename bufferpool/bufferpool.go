// Package bufferpool provides process-wide recycled scratch buffers of
// darts and unsigned integers: callers borrow a buffer, use it, and
// explicitly give it back, so hot traversal paths don't reallocate a
// queue per call.
package bufferpool

import (
	"reflect"
	"sync"

	"github.com/cgogn-go/cmaps/dart"
)

// Pool is a mutex-protected set of per-type buffer buckets; acquire
// and release are O(1) under the lock. Tests construct an isolated Pool
// with New rather than sharing the process-wide default.
type Pool struct {
	mu     sync.Mutex
	byType map[reflect.Type][]any
}

// New constructs an empty, isolated Pool.
func New() *Pool {
	return &Pool{byType: make(map[reflect.Type][]any)}
}

var defaultPool = sync.OnceValue(New)

// GetFrom borrows a zero-length, pre-allocated slice of T from p,
// allocating a fresh one on miss. A free function, not a method, because Go
// methods cannot introduce their own type parameters beyond the
// receiver's.
func GetFrom[T any](p *Pool) []T {
	var zero T
	t := reflect.TypeOf(zero)
	p.mu.Lock()
	defer p.mu.Unlock()
	bucket := p.byType[t]
	if len(bucket) == 0 {
		return make([]T, 0, 256)
	}
	buf := bucket[len(bucket)-1].([]T)
	p.byType[t] = bucket[:len(bucket)-1]
	return buf[:0]
}

// ReleaseTo returns buf to p for reuse by a future GetFrom[T].
func ReleaseTo[T any](p *Pool, buf []T) {
	var zero T
	t := reflect.TypeOf(zero)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byType[t] = append(p.byType[t], buf)
}

// Get borrows from the process-wide default pool.
func Get[T any]() []T { return GetFrom[T](defaultPool()) }

// Release returns buf to the process-wide default pool.
func Release[T any](buf []T) { ReleaseTo(defaultPool(), buf) }

// ReinterpretDarts reinterprets a []dart.Dart buffer in place as a
// []Cell buffer, for callers that collect plain darts while walking but
// want to hand the result back as cell handles of a known orbit. The
// caller is responsible for Cell being a single Dart-sized wrapper
// struct; the conversion is a slice-header reinterpretation, not a
// copy.
func ReinterpretDarts[Cell any](buf []dart.Dart) []Cell {
	return reinterpretSlice[dart.Dart, Cell](buf)
}
