// Package hilbert converts between Hilbert-curve indices and points in an
// n-dimensional hypercube of side 2^bits.
//
// The conversion uses John Skilling's transpose form ("Programming the Hilbert
// curve", AIP Conf. Proc. 707, 2004). A Hilbert index of bits·dims bits is
// first de-interleaved into dims words, most significant bit into the first
// axis, and the words are then transformed in place into coordinates.
// Consecutive indices always map to points at unit distance.
//
// Indices are arbitrary-precision integers so callers can feed a visitation
// counter of any magnitude; bits above bits·dims are ignored.
package hilbert

import (
	"math/big"
)

// MaxBits is the largest supported per-axis precision.
const MaxBits = 32

// Point returns the dims coordinates of the point at index along the Hilbert
// curve of the given precision. Every coordinate lies in [0, 2^bits-1]; with
// bits == 0 the result is the origin. Point panics if bits is outside
// [0, MaxBits] or dims < 1.
func Point(index *big.Int, bits, dims int) []uint32 {
	checkArgs(bits, dims)
	x := make([]uint32, dims)
	if bits == 0 {
		return x
	}

	// De-interleave: bit k of the index, counted from the most significant
	// of bits·dims, lands in axis k%dims at level bits-1-k/dims. This is
	// Skilling's transposed layout, the one the Rust hilbert crate's
	// Point::new_from_hilbert_index reads, so the last axis moves first.
	total := bits * dims
	for k := 0; k < total; k++ {
		if index.Bit(total-1-k) == 1 {
			x[k%dims] |= 1 << uint(bits-1-k/dims)
		}
	}
	transposeToAxes(x, bits)
	return x
}

// Index is the inverse of Point. It panics on the same arguments as Point
// or if len(coords) == 0.
func Index(coords []uint32, bits int) *big.Int {
	checkArgs(bits, len(coords))
	out := new(big.Int)
	if bits == 0 {
		return out
	}
	x := make([]uint32, len(coords))
	copy(x, coords)
	axesToTranspose(x, bits)

	dims := len(x)
	total := bits * dims
	for k := 0; k < total; k++ {
		if x[k%dims]&(1<<uint(bits-1-k/dims)) != 0 {
			out.SetBit(out, total-1-k, 1)
		}
	}
	return out
}

func checkArgs(bits, dims int) {
	if bits < 0 || bits > MaxBits {
		panic("hilbert: bits out of range")
	}
	if dims < 1 {
		panic("hilbert: dims must be positive")
	}
}

func transposeToAxes(x []uint32, bits int) {
	n := len(x)
	top := uint64(2) << uint(bits-1)

	// Gray decode.
	t := x[n-1] >> 1
	for i := n - 1; i > 0; i-- {
		x[i] ^= x[i-1]
	}
	x[0] ^= t

	// Undo excess work.
	for q := uint64(2); q != top; q <<= 1 {
		p := uint32(q - 1)
		for i := n - 1; i >= 0; i-- {
			if x[i]&uint32(q) != 0 {
				x[0] ^= p
			} else {
				t = (x[0] ^ x[i]) & p
				x[0] ^= t
				x[i] ^= t
			}
		}
	}
}

func axesToTranspose(x []uint32, bits int) {
	n := len(x)
	m := uint32(1) << uint(bits-1)

	// Inverse undo.
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := 0; i < n; i++ {
			if x[i]&q != 0 {
				x[0] ^= p
			} else {
				t := (x[0] ^ x[i]) & p
				x[0] ^= t
				x[i] ^= t
			}
		}
	}

	// Gray encode.
	for i := 1; i < n; i++ {
		x[i] ^= x[i-1]
	}
	var t uint32
	for q := m; q > 1; q >>= 1 {
		if x[n-1]&q != 0 {
			t ^= q - 1
		}
	}
	for i := range x {
		x[i] ^= t
	}
}
