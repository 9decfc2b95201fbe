//go:build dev
// +build dev

package build

const (
	// DEBUG is true in dev builds so that sanity checks panic immediately.
	DEBUG = true

	// Release is the release tag of the build.
	Release = "dev"
)
