package pnch

import (
	"sync/atomic"
	_ "unsafe" // for go:linkname
)

// clockFence is the target of the serializing read-modify-writes that bracket
// every clock read. The fences exist to bound instruction reordering around
// the timer read on a single core, not to coordinate between threads.
var clockFence int32

// nanotime returns the runtime's monotonic clock in nanoseconds. It is the
// same clock the runtime uses for timers and has well below microsecond
// resolution on all supported platforms.
//
//go:noescape
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// now reads the monotonic clock bracketed by sequentially consistent fences
// so that work from the measured region cannot drift across the timestamp.
func now() int64 {
	atomic.AddInt32(&clockFence, 1)
	t := nanotime()
	atomic.AddInt32(&clockFence, 1)
	return t
}
