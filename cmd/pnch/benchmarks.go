package main

import (
	"math/rand"

	"gitlab.com/NebulousLabs/errors"
	"gitlab.com/emptyspace/pest/distribution"
	"gitlab.com/emptyspace/pest/pnch"
)

// benchmark is a registered reference benchmark. Closure builds a fresh
// measurement closure together with whatever state it needs, so repeated runs
// start from identical conditions.
type benchmark struct {
	Name    string
	Detail  string
	Closure func() func()
}

// benchmarks is the registry of built-in reference benchmarks. They exist to
// exercise the harness and to give a quick feel for the machine's baseline
// costs; they are not a CPU comparison suite.
var benchmarks = []benchmark{
	{"noop", "empty closure, measures loop and call overhead", func() func() {
		return func() {}
	}},

	{"lcg", "one 64-bit linear congruential generator step", func() func() {
		state := uint64(0x2545F4914F6CDD1D)
		return func() {
			state = state*6364136223846793005 + 1442695040888963407
			pnch.Keep(state)
		}
	}},

	{"bitmask-draw", "bounded sampler draw from a seeded source", func() func() {
		mask := distribution.NewBitmask[int64](-512, 512)
		src := rand.NewSource(42).(rand.Source64)
		return func() {
			pnch.Keep(mask.Draw(src))
		}
	}},

	{"map-write", "write into a bounded map", func() func() {
		m := make(map[uint64]uint64, 1024)
		var i uint64
		return func() {
			i++
			m[i&1023] = i
		}
	}},

	{"stats-256", "summary statistics over 256 samples", func() func() {
		src := rand.New(rand.NewSource(42))
		samples := make([]float64, 256)
		for i := range samples {
			samples[i] = src.Float64() * 1e6
		}
		return func() {
			s := pnch.NewStats(samples, 1, 0)
			pnch.Escape(s)
		}
	}},
}

// selectBenchmarks resolves names to registry entries. No names selects the
// whole registry.
func selectBenchmarks(names []string) ([]benchmark, error) {
	if len(names) == 0 {
		return benchmarks, nil
	}
	selected := make([]benchmark, 0, len(names))
	for _, name := range names {
		found := false
		for _, b := range benchmarks {
			if b.Name == name {
				selected = append(selected, b)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.New("unknown benchmark: " + name)
		}
	}
	return selected, nil
}
