//go:build freebsd
// +build freebsd

package pnch

import (
	"testing"

	"golang.org/x/sys/unix"
)

// TestCpusetMask checks the bitmask construction across word boundaries.
func TestCpusetMask(t *testing.T) {
	t.Parallel()
	for _, cpu := range []int{0, 1, 63, 64, 127, 128, 255} {
		var set cpuset
		set.set(cpu)
		if !set.isSet(cpu) {
			t.Errorf("cpu %d not set in mask %v", cpu, set)
		}
		words := 0
		for _, w := range set {
			if w != 0 {
				words++
			}
		}
		if words != 1 {
			t.Errorf("cpu %d set more than one word: %v", cpu, set)
		}
	}
}

// TestPinRejectsOutOfRange checks that CPUs outside the mask width are
// refused before touching thread state.
func TestPinRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	if err := Pin(-1); err != unix.EINVAL {
		t.Error("expected EINVAL for negative cpu, got", err)
	}
	if err := Pin(256); err != unix.EINVAL {
		t.Error("expected EINVAL for cpu beyond mask width, got", err)
	}
}
