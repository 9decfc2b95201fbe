//go:build testing
// +build testing

package build

const (
	// DEBUG is true in testing builds so that sanity checks panic immediately.
	DEBUG = true

	// Release is the release tag of the build.
	Release = "testing"
)
