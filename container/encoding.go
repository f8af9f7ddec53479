package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

// ceilDiv computes ceil(a/b) for positive integers, used wherever a
// slot count must be rounded up to a whole number of chunks (Compact's
// post-shrink chunk count, a bool column's word-aligned tail length).
func ceilDiv[T constraints.Integer](a, b T) T {
	if a <= 0 {
		return 0
	}
	return (a-1)/b + 1
}

// sizeOf reports the fixed binary size of a value of T, as
// encoding/binary would encode it. It panics for types binary.Write
// can't handle; variable-size types have no place in a fixed-chunk
// column, a precondition the caller upholds.
func sizeOf[T any](zero T) int {
	n := binary.Size(zero)
	if n < 0 {
		panic(fmt.Sprintf("container: type %T has no fixed binary size", zero))
	}
	return n
}

func writeElems[T any](w io.Writer, elems []T) error {
	return binary.Write(w, binary.LittleEndian, elems)
}

func readElems[T any](r io.Reader, elems []T) error {
	return binary.Read(r, binary.LittleEndian, elems)
}
