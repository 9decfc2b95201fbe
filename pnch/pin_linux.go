//go:build linux
// +build linux

package pnch

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin binds the calling thread to the given logical CPU to reduce
// scheduler-induced jitter. The goroutine is locked to its OS thread first so
// the affinity mask keeps applying to the caller for the remainder of the
// measurement. The affinity mask is process-visible state; concurrent
// harnesses in the same process will observe each other's changes.
func Pin(cpu int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
