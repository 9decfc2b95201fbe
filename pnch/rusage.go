package pnch

import (
	"fmt"
	"io"

	"gitlab.com/NebulousLabs/errors"
)

// ResourceUsage is a point-in-time capture of OS-reported process resource
// counters.
type ResourceUsage struct {
	MaxRSS          int64 `json:"maxrss"`
	MinorPageFaults int64 `json:"minflt"`
	MajorPageFaults int64 `json:"majflt"`
}

// resourceMonitor holds the begin/end snapshot pair of one run. Both
// snapshots are overwritten on every recordBegin/recordEnd call pair.
type resourceMonitor struct {
	begin ResourceUsage
	end   ResourceUsage
}

// getrusage is the platform query behind every snapshot. Tests swap it out to
// exercise the failure path.
var getrusage = getrusageSelf

// recordBegin captures the begin snapshot. A failed kernel query zeroes the
// snapshot and is reported to errw; the measurement is not aborted, timing
// data is still meaningful without resource data.
func (m *resourceMonitor) recordBegin(errw io.Writer) {
	ru, err := getrusage()
	if err != nil {
		fmt.Fprintln(errw, errors.AddContext(err, "getrusage failed at begin"))
		ru = ResourceUsage{}
	}
	m.begin = ru
}

// recordEnd captures the end snapshot with the same failure semantics as
// recordBegin.
func (m *resourceMonitor) recordEnd(errw io.Writer) {
	ru, err := getrusage()
	if err != nil {
		fmt.Fprintln(errw, errors.AddContext(err, "getrusage failed at end"))
		ru = ResourceUsage{}
	}
	m.end = ru
}

// reportTo renders both snapshots as labelled key/value lines.
func (m *resourceMonitor) reportTo(w io.Writer) {
	reportUsage(w, "begin", m.begin)
	reportUsage(w, "end", m.end)
}

func reportUsage(w io.Writer, name string, ru ResourceUsage) {
	fmt.Fprintf(w, "  %s/max resident set size = %d\n", name, ru.MaxRSS)
	fmt.Fprintf(w, "  %s/minor page faults = %d\n", name, ru.MinorPageFaults)
	fmt.Fprintf(w, "  %s/major page faults = %d\n", name, ru.MajorPageFaults)
}
