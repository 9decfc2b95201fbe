//go:build !testing && !dev
// +build !testing,!dev

package build

const (
	// DEBUG is false in standard builds. Sanity checks guarded by DEBUG are
	// compiled in but do not panic, they only print to os.Stderr.
	DEBUG = false

	// Release is the release tag of the build.
	Release = "standard"
)
