package pnch

import (
	"bytes"
	"strings"
	"testing"
)

// TestRunCounts checks the loop structure: inner*outer closure invocations
// and one sample per outer batch.
func TestRunCounts(t *testing.T) {
	t.Parallel()
	var counter int
	c := NewConfig().InnerLoops(2).OuterLoops(3)
	c.Run("counter", func() { counter++ })
	if counter != 6 {
		t.Error("closure should have run exactly 6 times, ran", counter)
	}
	if len(c.Samples()) != 3 {
		t.Error("expected exactly 3 samples, got", len(c.Samples()))
	}
	for i, s := range c.Samples() {
		if s < 0 {
			t.Errorf("sample %d is negative: %v", i, s)
		}
	}
}

// TestRunResets checks that Run is a full reset: previous samples, cached
// statistics and the offset are all discarded.
func TestRunResets(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(1).OuterLoops(5)
	c.Run("first", func() {})
	c.Offset(123)
	if c.Report().Offset != 123 {
		t.Fatal("offset should be visible after Offset")
	}
	c.Run("second", func() {})
	if got := len(c.Samples()); got != 5 {
		t.Error("second run should hold exactly 5 samples, got", got)
	}
	if c.Report().Offset != 0 {
		t.Error("Run should reset the offset")
	}
	if c.Name() != "second" {
		t.Error("Run should store the new name, got", c.Name())
	}
}

// TestStatsCaching checks that Stats is computed once and reused until the
// configuration mutates, and that mutation is always visible.
func TestStatsCaching(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(1).OuterLoops(7)
	c.Run("cached", func() {})

	first := c.Stats()
	if second := c.Stats(); second != first {
		t.Error("Stats should serve the cached value while the configuration is unchanged")
	}

	baseMean := first.Mean()
	recomputed := c.Offset(1).Stats()
	if recomputed == first {
		t.Error("Offset should invalidate the cached statistics")
	}
	if diff := baseMean - recomputed.Mean(); diff < 0.999999 || diff > 1.000001 {
		t.Error("offset of 1 should shift the mean by exactly 1, shifted by", diff)
	}
}

// TestMutatorsClearSamples checks that loop-count changes discard collected
// samples, since they are incomparable under a new configuration.
func TestMutatorsClearSamples(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(1).OuterLoops(3)
	c.Run("samples", func() {})
	if len(c.Samples()) != 3 {
		t.Fatal("run should have collected 3 samples")
	}
	c.InnerLoops(2)
	if len(c.Samples()) != 0 {
		t.Error("InnerLoops should discard collected samples")
	}
	c.Run("samples", func() {}).OuterLoops(4)
	if len(c.Samples()) != 0 {
		t.Error("OuterLoops should discard collected samples")
	}
}

// TestReportIdempotence renders the report twice without an intervening
// change and expects identical output.
func TestReportIdempotence(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(10).OuterLoops(5)
	c.Run("idempotent", func() {})
	var first, second bytes.Buffer
	c.ReportTo(&first)
	c.ReportTo(&second)
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("reports differ:\n%s\n---\n%s", first.String(), second.String())
	}
}

// TestReportFormat checks field presence and order in the rendered report.
func TestReportFormat(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(10).OuterLoops(5)
	c.Run("format", func() {})
	var buf bytes.Buffer
	c.ReportTo(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "[benchmark | format]\n") {
		t.Error("report should open with the benchmark name:\n" + out)
	}
	order := []string{
		"stats/total = ",
		"stats/average = ",
		"stats/stddev = ",
		"begin/max resident set size = ",
		"begin/minor page faults = ",
		"begin/major page faults = ",
		"end/max resident set size = ",
		"end/minor page faults = ",
		"end/major page faults = ",
	}
	pos := 0
	for _, field := range order {
		idx := strings.Index(out[pos:], field)
		if idx < 0 {
			t.Fatalf("report is missing %q or has it out of order:\n%s", field, out)
		}
		pos += idx
	}
	if strings.Contains(out, "stats/offset") {
		t.Error("zero offset should not be reported")
	}

	buf.Reset()
	c.Offset(0.5).ReportTo(&buf)
	if !strings.Contains(buf.String(), "stats/offset = 0.5") {
		t.Error("nonzero offset should be reported:\n" + buf.String())
	}
}

// TestReportPrefixed checks the label variant used to tell multiple reports
// in one stream apart.
func TestReportPrefixed(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(10).OuterLoops(3)
	c.Run("labelled", func() {})
	var buf bytes.Buffer
	c.ReportPrefixed(&buf, "warm")
	if !strings.Contains(buf.String(), "stats/warm/total = ") {
		t.Error("label should be folded into the stats keys:\n" + buf.String())
	}
}

// TestReportRoundTrip checks that the serializable report mirrors the
// statistics accessors.
func TestReportRoundTrip(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(10).OuterLoops(5)
	c.Run("roundtrip", func() {})
	r := c.Report()
	s := c.Stats()
	if r.Name != "roundtrip" || r.InnerLoops != 10 || r.OuterLoops != 5 {
		t.Errorf("report configuration mismatch: %+v", r)
	}
	if r.MeanNS != s.Mean() || r.StdDevNS != s.StdDev() || r.MedianNS != s.Median() {
		t.Error("report statistics should mirror the Stats accessors")
	}
	if len(r.Samples) != 5 {
		t.Error("report should carry the raw samples, got", len(r.Samples))
	}
	if r.TotalNS != c.TotalTime() {
		t.Error("report total should mirror TotalTime")
	}
}

// TestTouchChaining checks that the barrier entry points accept arbitrary
// values and keep the fluent chain intact.
func TestTouchChaining(t *testing.T) {
	t.Parallel()
	x := 23
	s := []byte{1, 2, 3}
	c := NewConfig().InnerLoops(1).OuterLoops(1)
	if got := c.Run("touch", func() { x++ }).Touch(x, s, "str"); got != c {
		t.Error("Touch should return its receiver")
	}
}

// TestSamplesIsACopy ensures callers cannot mutate harness state through the
// returned slice.
func TestSamplesIsACopy(t *testing.T) {
	t.Parallel()
	c := NewConfig().InnerLoops(1).OuterLoops(2)
	c.Run("copy", func() {})
	samples := c.Samples()
	samples[0] = -1
	if c.Samples()[0] == -1 {
		t.Error("Samples should return a copy")
	}
}
