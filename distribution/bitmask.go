// Package distribution provides the bounded integer sampler used to generate
// deterministic, reproducible benchmark inputs.
package distribution

import (
	"math/bits"

	"gitlab.com/emptyspace/pest/build"
)

// Source is the generator capability consumed by Draw: anything producing
// successive uniform 64-bit words. math/rand.Source64 satisfies it, as does
// this package's Entropy source. No seeding or period contract is imposed.
type Source interface {
	Uint64() uint64
}

// Integer enumerates the integer types a Bitmask can produce.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bitmask draws uniformly distributed integers from an inclusive [min, max]
// range using mask-based rejection sampling: masking with the smallest
// all-ones pattern covering the range keeps the common case to one generator
// call and one comparison, with no modulo bias and no division. The mask is
// never more than one bit wider than necessary, so the expected number of
// generator calls per draw is below 2 for any range.
//
// See http://www.pcg-random.org/posts/bounded-rands.html.
//
// A Bitmask is immutable after construction and safe to share between draws;
// all mutable state lives in the supplied Source.
type Bitmask[T Integer] struct {
	min  T
	span uint64
}

// NewBitmask constructs a sampler over the inclusive range [min, max].
// min < max is a caller contract.
func NewBitmask[T Integer](min, max T) Bitmask[T] {
	if min >= max {
		build.Critical("NewBitmask requires min < max:", min, max)
	}
	// Two's complement subtraction yields the unsigned width of the range
	// for signed and unsigned T alike.
	return Bitmask[T]{min: min, span: uint64(max) - uint64(min)}
}

// Min returns the inclusive lower bound.
func (d Bitmask[T]) Min() T { return d.min }

// Max returns the inclusive upper bound.
func (d Bitmask[T]) Max() T { return d.min + T(d.span) }

// Draw returns the next sample from the range, consuming words from src
// until one lands inside the range after masking. Identical source state
// yields identical output sequences.
func (d Bitmask[T]) Draw(src Source) T {
	if d.span == 0 {
		// A full-width range wraps the span to zero; every raw word is a
		// valid result.
		return T(src.Uint64())
	}
	mask := ^uint64(0) >> uint(bits.LeadingZeros64(d.span))
	for {
		x := src.Uint64() & mask
		if x <= d.span {
			return d.min + T(x)
		}
	}
}
