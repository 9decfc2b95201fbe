//go:build freebsd
// +build freebsd

package pnch

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Constants from sys/cpuset.h, which x/sys does not wrap for freebsd.
const (
	cpuLevelWhich = 3 // CPU_LEVEL_WHICH
	cpuWhichTID   = 1 // CPU_WHICH_TID
)

// cpuset mirrors the kernel's cpuset_t, a CPU_SETSIZE (256) bit mask.
type cpuset [4]uint64

// set marks cpu in the mask. cpu must be within the mask width.
func (s *cpuset) set(cpu int) {
	s[cpu/64] |= 1 << (uint(cpu) % 64)
}

// isSet reports whether cpu is marked in the mask.
func (s *cpuset) isSet(cpu int) bool {
	return s[cpu/64]&(1<<(uint(cpu)%64)) != 0
}

// Pin binds the calling thread to the given logical CPU to reduce
// scheduler-induced jitter. The goroutine is locked to its OS thread first so
// the affinity mask keeps applying to the caller for the remainder of the
// measurement.
func Pin(cpu int) error {
	if cpu < 0 || cpu >= len(cpuset{})*64 {
		return unix.EINVAL
	}
	runtime.LockOSThread()
	var set cpuset
	set.set(cpu)
	// cpuset_setaffinity(CPU_LEVEL_WHICH, CPU_WHICH_TID, -1, ...) targets the
	// calling thread. x/sys carries the syscall number but no wrapper.
	_, _, errno := unix.Syscall6(unix.SYS_CPUSET_SETAFFINITY,
		cpuLevelWhich, cpuWhichTID, ^uintptr(0),
		unsafe.Sizeof(set), uintptr(unsafe.Pointer(&set)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}
