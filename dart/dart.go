// Package dart implements the dart-based topology layer: the Dart
// newtype and the φ-family permutation columns (φ1, φ2, φ3) that the
// 1-, 2-, and 3-dimensional maps build on.
package dart

import (
	"math"
	"strconv"
)

// Dart is an index into a dart container's φ-permutation columns. It is
// the atomic unit of topology: every cell (vertex/edge/face/volume) is
// an orbit of darts under a subgroup of the φ permutations.
type Dart uint32

// NilDart marks the absence of a dart, e.g. the result of adding a face
// with no sides, or an orbit-walk step that stops at a boundary.
// Unsewn boundary darts are φ2/φ3 fixed points, not NilDart images.
const NilDart = Dart(math.MaxUint32)

// IsNil reports whether d is the nil dart.
func (d Dart) IsNil() bool { return d == NilDart }

func (d Dart) String() string {
	if d.IsNil() {
		return "Dart(nil)"
	}
	return "Dart(" + strconv.FormatUint(uint64(d), 10) + ")"
}
