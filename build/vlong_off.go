//go:build !vlong
// +build !vlong

package build

// VLONG is false unless the vlong build tag is set. Statistical tests that
// need very large draw counts to be meaningful are gated on VLONG.
const VLONG = false
