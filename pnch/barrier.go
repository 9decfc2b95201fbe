package pnch

import "unsafe"

// Scalar enumerates the trivially copyable, word-or-smaller, non-pointer
// types that are eligible for the register form of the optimization barrier.
// Membership in the type set is checked at compile time; anything outside it
// must go through Escape or Touch instead.
type Scalar interface {
	~bool | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// escapeSink is the global that Escape publishes pointers through. The
// compiler cannot prove the store dead, so the pointed-to memory is treated
// as read and potentially modified.
var escapeSink unsafe.Pointer

// Keep forces the compiler to treat v as used. The call boundary of a
// function that is never inlined requires the argument to be materialized,
// which is enough to keep the computation producing it alive. Keep performs
// no work, does not allocate, and never panics.
//
//go:noinline
func Keep[T Scalar](v T) {
	_ = v
}

// Escape forces the compiler to assume the memory behind v is read and
// modified. Use it for values that do not fit the Scalar constraint:
// composite types, strings, and anything pointer-shaped.
//
//go:noinline
func Escape[T any](v *T) {
	escapeSink = unsafe.Pointer(v)
	escapeSink = nil
}

// Touch applies the optimization barrier to every argument, each evaluated
// for its side effect only. Boxing into the interface value already forces
// each argument to be materialized; the Escape call then pins its memory.
func Touch(vals ...interface{}) {
	for i := range vals {
		Escape(&vals[i])
	}
}
