package pnch

import (
	"math"
	"sort"

	"gitlab.com/emptyspace/pest/build"
)

// Stats holds descriptive statistics derived from one run's raw samples.
// A Stats value is immutable once computed.
type Stats struct {
	min      float64
	max      float64
	q        [3]float64
	mean     float64
	variance float64
}

// NewStats computes descriptive statistics over the given raw samples. Every
// sample is first divided by divisor (converting a batch duration into a
// per-iteration cost) and then reduced by offset (a measured baseline, e.g.
// empty-loop overhead). The input slice is not modified.
//
// len(samples) >= 1 and divisor >= 1 are caller contracts.
func NewStats(samples []float64, divisor uint64, offset float64) *Stats {
	if len(samples) == 0 {
		build.Critical("NewStats requires at least one sample")
	}
	if divisor == 0 {
		build.Critical("NewStats requires a positive divisor")
	}

	results := make([]float64, len(samples))
	copy(results, samples)
	sort.Float64s(results)

	scale := float64(divisor)
	for i := range results {
		results[i] /= scale
		results[i] -= offset
	}

	count := len(results)
	s := &Stats{
		min: results[0],
		max: results[count-1],
	}
	if count == 1 {
		s.q[0], s.q[1], s.q[2] = results[0], results[0], results[0]
		s.mean = results[0]
		s.variance = 0
		return s
	}

	// Kahan summation to bound round-off across long accumulations.
	//   - see: http://en.wikipedia.org/wiki/Kahan_summation_algorithm
	var sum, c float64
	for _, r := range results {
		y := r - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	s.mean = sum / float64(count)

	// Unbiased (corrected) sample variance with the same compensation.
	sum, c = 0, 0
	for _, r := range results {
		d := r - s.mean
		y := d*d - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	s.variance = sum / float64(count-1)

	// Quartiles follow Method 3: http://en.wikipedia.org/wiki/Quartile
	// The index arithmetic must stay exactly as written; the residue classes
	// of count mod 4 select between neighbor averages and 25/75 blends.
	if count%2 == 0 {
		s.q[1] = (results[count/2-1] + results[count/2]) * 0.5
		if count%4 == 0 {
			s.q[0] = (results[count/4-1] + results[count/4]) * 0.5
			s.q[2] = (results[count/2+count/4-1] + results[count/2+count/4]) * 0.5
		} else {
			s.q[0] = results[count/4]
			s.q[2] = results[count/2+count/4]
		}
	} else if count%4 == 1 {
		s.q[0] = results[count/4-1]*0.25 + results[count/4]*0.75
		s.q[1] = results[count/2]
		s.q[2] = results[count/4*3]*0.75 + results[count/4*3+1]*0.25
	} else { // count%4 == 3
		s.q[0] = results[count/4]*0.75 + results[count/4+1]*0.25
		s.q[1] = results[count/2]
		s.q[2] = results[count/4*3+1]*0.25 + results[count/4*3+2]*0.75
	}
	return s
}

// Min returns the smallest normalized sample.
func (s *Stats) Min() float64 { return s.min }

// Max returns the largest normalized sample.
func (s *Stats) Max() float64 { return s.max }

// Range returns Max minus Min.
func (s *Stats) Range() float64 { return s.max - s.min }

// Mean returns the compensated arithmetic mean.
func (s *Stats) Mean() float64 { return s.mean }

// Variance returns the unbiased sample variance.
func (s *Stats) Variance() float64 { return s.variance }

// StdDev returns the sample standard deviation.
func (s *Stats) StdDev() float64 { return math.Sqrt(s.variance) }

// Median returns the second quartile.
func (s *Stats) Median() float64 { return s.q[1] }

// Q1 returns the first quartile.
func (s *Stats) Q1() float64 { return s.q[0] }

// Q2 returns the second quartile.
func (s *Stats) Q2() float64 { return s.q[1] }

// Q3 returns the third quartile.
func (s *Stats) Q3() float64 { return s.q[2] }

// Quartile returns quartile 1, 2 or 3. Any other argument is a caller error.
func (s *Stats) Quartile(which int) float64 {
	if which < 1 || which > 3 {
		build.Critical("Quartile requires 1 <= which <= 3:", which)
	}
	return s.q[which-1]
}
