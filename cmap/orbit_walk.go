package cmap

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/cgogn-go/cmaps/bufferpool"
	"github.com/cgogn-go/cmaps/dart"
	"github.com/cgogn-go/cmaps/internal/embedding"
	"github.com/cgogn-go/cmaps/orbit"
)

// generator is one φ-composition used to enumerate an orbit's darts.
// Every generator used here is its own self-contained step (possibly a
// composition like φ2∘φ1⁻¹ for a CMap2 vertex); orbits are computed as
// the breadth-first closure of d under the full generator set, which is
// correct regardless of whether the set contains one permutation or
// several involutions.
type generator func(*dart.Container, dart.Dart) dart.Dart

// withDarts binds a dimension/kind orbit walk to a concrete dart
// container, producing the embedding.Walker the embedding table expects.
func withDarts(darts *dart.Container, dimension int, kind orbit.Kind) embedding.Walker {
	gens := generatorsFor(dimension, kind)
	return func(d dart.Dart, visit func(dart.Dart) bool) {
		bfsWalk(darts, gens, d, visit)
	}
}

// bfsWalk enumerates an orbit breadth-first using a pooled scratch
// queue rather than allocating a fresh slice per call.
func bfsWalk(darts *dart.Container, gens []generator, start dart.Dart, visit func(dart.Dart) bool) {
	visited := roaring.New()
	queue := bufferpool.Get[dart.Dart]()
	defer func() { bufferpool.Release(queue) }()
	queue = append(queue, start)
	visited.Add(uint32(start))
	for head := 0; head < len(queue); head++ {
		d := queue[head]
		if !visit(d) {
			return
		}
		for _, g := range gens {
			n := g(darts, d)
			if n.IsNil() {
				continue
			}
			if visited.CheckedAdd(uint32(n)) {
				queue = append(queue, n)
			}
		}
	}
}

func generatorsFor(dimension int, kind orbit.Kind) []generator {
	switch dimension {
	case 1:
		switch kind {
		case orbit.KindFace:
			return []generator{phi1}
		default:
			return nil
		}
	case 2:
		switch kind {
		case orbit.KindFace:
			return []generator{phi1}
		case orbit.KindEdge:
			return []generator{phi2}
		case orbit.KindVertex:
			return []generator{vertex2Next, vertex2Prev}
		case orbit.KindVolume:
			return []generator{phi1, phi1Inv, phi2}
		default:
			return nil
		}
	case 3:
		switch kind {
		case orbit.KindFace:
			return []generator{phi1, phi1Inv, phi3}
		case orbit.KindEdge:
			return []generator{phi2, phi3}
		case orbit.KindVertex:
			return []generator{vertex2Next, vertex2Prev, vertex3Next, vertex3Prev}
		case orbit.KindVolume:
			return []generator{phi1, phi1Inv, phi2}
		}
	}
	return nil
}

func phi1(d *dart.Container, a dart.Dart) dart.Dart    { return d.Phi1(a) }
func phi1Inv(d *dart.Container, a dart.Dart) dart.Dart { return d.Phi1Inv(a) }
func phi2(d *dart.Container, a dart.Dart) dart.Dart    { return d.Phi2(a) }
func phi3(d *dart.Container, a dart.Dart) dart.Dart    { return d.Phi3(a) }

// The vertex generators turn around a dart's base vertex: φ2∘φ1⁻¹ and
// its inverse φ1∘φ2 within a shell, φ3∘φ1⁻¹ and φ1∘φ3 across volume
// boundaries. A φ2/φ3 fixed point means there is no face or volume on
// the other side; rotating through it would step onto a dart based at a
// different vertex, so the walk stops in that direction instead.

func vertex2Next(d *dart.Container, a dart.Dart) dart.Dart {
	p := d.Phi1Inv(a)
	if q := d.Phi2(p); q != p {
		return q
	}
	return dart.NilDart
}

func vertex2Prev(d *dart.Container, a dart.Dart) dart.Dart {
	if q := d.Phi2(a); q != a {
		return d.Phi1(q)
	}
	return dart.NilDart
}

func vertex3Next(d *dart.Container, a dart.Dart) dart.Dart {
	p := d.Phi1Inv(a)
	if q := d.Phi3(p); q != p {
		return q
	}
	return dart.NilDart
}

func vertex3Prev(d *dart.Container, a dart.Dart) dart.Dart {
	if q := d.Phi3(a); q != a {
		return d.Phi1(q)
	}
	return dart.NilDart
}
