//go:build freebsd
// +build freebsd

package pnch

import "golang.org/x/sys/unix"

// getrusageSelf queries the kernel for the calling process' resource usage.
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
