//go:build vlong
// +build vlong

package build

// VLONG is true when the vlong build tag is set.
const VLONG = true
