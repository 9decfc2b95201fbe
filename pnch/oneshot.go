package pnch

import (
	"fmt"
	"io"
	"os"
)

// Oneshot is the single-measurement harness. It executes a closure exactly
// once inside the same fenced timing and resource snapshot pair as Config,
// without statistical aggregation.
type Oneshot struct {
	name    string
	deltaT  float64
	monitor resourceMonitor
	errw    io.Writer
}

// NewOneshot returns a one-shot harness reporting errors to os.Stderr.
func NewOneshot() *Oneshot {
	return &Oneshot{errw: os.Stderr}
}

// ErrorsTo redirects environment-failure reports to w.
func (o *Oneshot) ErrorsTo(w io.Writer) *Oneshot {
	o.errw = w
	return o
}

// Pin binds the calling thread to the given logical CPU before measurement.
// Failure to pin is reported to the error sink and is non-fatal.
func (o *Oneshot) Pin(cpu int) *Oneshot {
	if err := Pin(cpu); err != nil {
		fmt.Fprintf(o.errw, "pinning thread to cpu %d failed: %v\n", cpu, err)
	}
	return o
}

// Run executes fn exactly once, storing the elapsed nanoseconds and the
// begin/end resource snapshots. A panic escaping fn propagates to the caller.
func (o *Oneshot) Run(name string, fn func()) *Oneshot {
	o.name = name
	o.monitor.recordBegin(o.errw)
	begin := now()
	fn()
	end := now()
	o.deltaT = float64(end - begin)
	o.monitor.recordEnd(o.errw)
	return o
}

// Elapsed returns the measured duration of the last run in nanoseconds.
func (o *Oneshot) Elapsed() float64 {
	return o.deltaT
}

// Resources returns the begin and end resource snapshots of the last run.
func (o *Oneshot) Resources() (begin, end ResourceUsage) {
	return o.monitor.begin, o.monitor.end
}

// Touch applies the optimization barrier to every argument.
func (o *Oneshot) Touch(vals ...interface{}) *Oneshot {
	Touch(vals...)
	return o
}

// ReportTo writes the elapsed time, auto-scaled to the largest sensible unit,
// followed by both resource snapshots.
func (o *Oneshot) ReportTo(w io.Writer) *Oneshot {
	fmt.Fprintf(w, "[oneshot | %s]\n", o.name)
	switch {
	case o.deltaT >= 1e9:
		fmt.Fprintf(w, "  delta_t = %vs\n", o.deltaT/1e9)
	case o.deltaT >= 1e6:
		fmt.Fprintf(w, "  delta_t = %vms\n", o.deltaT/1e6)
	case o.deltaT >= 1e3:
		fmt.Fprintf(w, "  delta_t = %vus\n", o.deltaT/1e3)
	default:
		fmt.Fprintf(w, "  delta_t = %vns\n", o.deltaT)
	}
	o.monitor.reportTo(w)
	return o
}
