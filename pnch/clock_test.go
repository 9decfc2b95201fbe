package pnch

import (
	"testing"
	"time"
)

// TestNowMonotonic checks that consecutive clock reads never go backwards.
func TestNowMonotonic(t *testing.T) {
	t.Parallel()
	prev := now()
	for i := 0; i < 10000; i++ {
		cur := now()
		if cur < prev {
			t.Fatal("clock went backwards:", prev, "->", cur)
		}
		prev = cur
	}
}

// TestNowAdvances checks that the clock tracks real time at least coarsely.
func TestNowAdvances(t *testing.T) {
	t.Parallel()
	start := now()
	time.Sleep(5 * time.Millisecond)
	elapsed := now() - start
	if elapsed < 5e6 {
		t.Error("a 5ms sleep should advance the clock by at least 5e6 ns, advanced", elapsed)
	}
}
