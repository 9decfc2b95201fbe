// Package pnch is a wall-clock micro-benchmarking harness. It times batches
// of closure invocations with a fence-bracketed monotonic clock, snapshots
// OS process resource usage around every run, and summarizes the collected
// samples with numerically stable descriptive statistics.
//
// All types in this package are designed for single-threaded use: a Config or
// Oneshot must not be shared between goroutines during a run.
package pnch

import (
	"fmt"
	"io"
	"os"

	"gitlab.com/emptyspace/pest/build"
)

const (
	// defaultInnerLoops is the number of closure invocations timed as one
	// indivisible batch.
	defaultInnerLoops = 100000

	// defaultOuterLoops is the number of independent timed batches whose
	// durations become the raw sample sequence.
	defaultOuterLoops = 23
)

// Config is the repeated-trial benchmark harness. The zero value is not
// usable; construct with NewConfig. All configuration methods return the
// receiver so calls can be chained:
//
//	pnch.NewConfig().OuterLoops(31).Run("shift", func() { x <<= 1 }).
//		Touch(x).
//		ReportTo(os.Stdout)
type Config struct {
	name         string
	innerLoopCnt uint64
	outerLoopCnt uint32
	offset       float64
	results      []float64
	cachedStats  *Stats
	monitor      resourceMonitor
	errw         io.Writer
}

// NewConfig returns a harness with the default loop counts.
func NewConfig() *Config {
	return &Config{
		innerLoopCnt: defaultInnerLoops,
		outerLoopCnt: defaultOuterLoops,
		errw:         os.Stderr,
	}
}

// reset drops the cached statistics and the offset. Statistics must never be
// observable stale after a configuration change.
func (c *Config) reset() {
	c.cachedStats = nil
	c.offset = 0
}

// ErrorsTo redirects environment-failure reports (getrusage errors and the
// like) to w. The default sink is os.Stderr.
func (c *Config) ErrorsTo(w io.Writer) *Config {
	c.errw = w
	return c
}

// InnerLoops sets the number of closure invocations per timed batch. The
// count doubles as the divisor that turns a batch duration into a
// per-iteration cost, so it must be positive. Changing it discards any
// collected samples and cached statistics.
func (c *Config) InnerLoops(n uint64) *Config {
	if n == 0 {
		build.Critical("InnerLoops requires a positive count")
	}
	c.reset()
	c.results = c.results[:0]
	c.innerLoopCnt = n
	return c
}

// OuterLoops sets the number of independent timed batches. Changing it
// discards any collected samples and cached statistics.
func (c *Config) OuterLoops(n uint32) *Config {
	if n == 0 {
		build.Critical("OuterLoops requires a positive count")
	}
	c.reset()
	c.results = c.results[:0]
	c.outerLoopCnt = n
	return c
}

// Offset sets the baseline subtracted from every normalized sample, usually
// the measured cost of an empty loop. Cached statistics are discarded.
func (c *Config) Offset(offset float64) *Config {
	c.cachedStats = nil
	c.offset = offset
	return c
}

// Run executes fn innerLoops times per batch for outerLoops batches,
// recording the elapsed nanoseconds of every batch. Any previously collected
// samples, cached statistics and offset are discarded first; a Config holds
// the results of at most one run. A panic escaping fn propagates to the
// caller.
func (c *Config) Run(name string, fn func()) *Config {
	c.reset()
	c.results = c.results[:0]
	c.name = name
	c.monitor.recordBegin(c.errw)
	for i := uint32(0); i < c.outerLoopCnt; i++ {
		start := now()
		for j := uint64(0); j < c.innerLoopCnt; j++ {
			fn()
		}
		end := now()
		c.results = append(c.results, float64(end-start))
	}
	c.monitor.recordEnd(c.errw)
	return c
}

// Touch applies the optimization barrier to every argument so the computation
// feeding them cannot be eliminated from the timed closure.
func (c *Config) Touch(vals ...interface{}) *Config {
	Touch(vals...)
	return c
}

// Stats returns the descriptive statistics of the last run, computing them on
// first request and serving the cached value until the configuration mutates.
// Calling Stats before Run is a caller error.
func (c *Config) Stats() *Stats {
	if c.cachedStats == nil {
		c.cachedStats = NewStats(c.results, c.innerLoopCnt, c.offset)
	}
	return c.cachedStats
}

// Average returns the mean per-iteration cost in nanoseconds.
func (c *Config) Average() float64 {
	return c.Stats().Mean()
}

// TotalTime returns the raw wall-clock total of all batches in nanoseconds,
// before divisor and offset normalization.
func (c *Config) TotalTime() float64 {
	var total float64
	for _, r := range c.results {
		total += r
	}
	return total
}

// Name returns the name passed to the last Run.
func (c *Config) Name() string {
	return c.name
}

// Samples returns a copy of the raw per-batch durations in nanoseconds.
func (c *Config) Samples() []float64 {
	return append([]float64(nil), c.results...)
}

// Resources returns the begin and end resource snapshots of the last run.
func (c *Config) Resources() (begin, end ResourceUsage) {
	return c.monitor.begin, c.monitor.end
}

// ReportTo writes the standard line-oriented report to w: benchmark name,
// total time, average, standard deviation, the offset if one is set, and the
// begin/end resource snapshots.
func (c *Config) ReportTo(w io.Writer) *Config {
	return c.ReportPrefixed(w, "")
}

// ReportPrefixed is ReportTo with an extra label folded into the stats keys,
// for distinguishing multiple reports in one stream.
func (c *Config) ReportPrefixed(w io.Writer, label string) *Config {
	s := c.Stats()
	sep := "  stats"
	if label != "" {
		sep = "  stats/"
	}
	fmt.Fprintf(w, "[benchmark | %s]\n", c.name)
	fmt.Fprintf(w, "%s%s/total = %v\n", sep, label, c.TotalTime())
	fmt.Fprintf(w, "%s%s/average = %v\n", sep, label, s.Mean())
	fmt.Fprintf(w, "%s%s/stddev = %v\n", sep, label, s.StdDev())
	if c.offset != 0 {
		fmt.Fprintf(w, "%s%s/offset = %v\n", sep, label, c.offset)
	}
	c.monitor.reportTo(w)
	fmt.Fprintln(w)
	return c
}

// Report is a serializable summary of a completed run.
type Report struct {
	Name       string  `json:"name"`
	InnerLoops uint64  `json:"innerloops"`
	OuterLoops uint32  `json:"outerloops"`
	Offset     float64 `json:"offset,omitempty"`

	TotalNS    float64 `json:"totalns"`
	MinNS      float64 `json:"minns"`
	MaxNS      float64 `json:"maxns"`
	MeanNS     float64 `json:"meanns"`
	VarianceNS float64 `json:"variancens"`
	StdDevNS   float64 `json:"stddevns"`
	Q1NS       float64 `json:"q1ns"`
	MedianNS   float64 `json:"medianns"`
	Q3NS       float64 `json:"q3ns"`

	Samples []float64 `json:"samples"`

	Begin ResourceUsage `json:"begin"`
	End   ResourceUsage `json:"end"`
}

// Report assembles the serializable summary of the last run.
func (c *Config) Report() Report {
	s := c.Stats()
	begin, end := c.Resources()
	return Report{
		Name:       c.name,
		InnerLoops: c.innerLoopCnt,
		OuterLoops: c.outerLoopCnt,
		Offset:     c.offset,

		TotalNS:    c.TotalTime(),
		MinNS:      s.Min(),
		MaxNS:      s.Max(),
		MeanNS:     s.Mean(),
		VarianceNS: s.Variance(),
		StdDevNS:   s.StdDev(),
		Q1NS:       s.Q1(),
		MedianNS:   s.Median(),
		Q3NS:       s.Q3(),

		Samples: c.Samples(),

		Begin: begin,
		End:   end,
	}
}
