//go:build linux
// +build linux

package pnch

import "golang.org/x/sys/unix"

// getrusageSelf queries the kernel for the calling process' resource usage.
// On Linux, Maxrss is reported in kilobytes and the fault counters cover the
// whole process since start.
func getrusageSelf() (ResourceUsage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return ResourceUsage{}, err
	}
	return ResourceUsage{
		MaxRSS:          int64(ru.Maxrss),
		MinorPageFaults: int64(ru.Minflt),
		MajorPageFaults: int64(ru.Majflt),
	}, nil
}
