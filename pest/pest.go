// Package pest is a minimal expectation and suite micro-framework with
// line-oriented console reporting. It exists for self-contained verification
// programs that run outside `go test`; within the module's own test files the
// standard testing package is used instead.
package pest

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"runtime"
)

// epsilon is the spacing between 1.0 and the next larger float64. Float
// comparisons are considered equal within min-magnitude-scaled epsilon.
var epsilon = math.Nextafter(1, 2) - 1

// location renders the file:line of the expectation call site. skip counts
// stack frames above location itself.
func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// valuesEqual compares an actual and an expected value. Two float64 values
// compare fuzzily; everything else falls back to deep equality.
func valuesEqual(got, want interface{}) bool {
	gf, gok := got.(float64)
	wf, wok := want.(float64)
	if gok && wok {
		return math.Abs(wf-gf) <= math.Abs(math.Min(wf, gf))*epsilon
	}
	return reflect.DeepEqual(got, want)
}

// TestState tracks the expectations of a single test closure. After the
// first failure the remaining expectations are skipped but still counted, so
// a broken test reports one actionable failure instead of a cascade.
type TestState struct {
	w        io.Writer
	failed   uint
	passed   uint
	skipped  uint
	uncaught uint
}

// Expect records an equality expectation.
func (t *TestState) Expect(got, want interface{}) {
	where := location(2)
	if t.failed > 0 {
		t.skipped++
		return
	}
	if valuesEqual(got, want) {
		t.passed++
		return
	}
	fmt.Fprintf(t.w, "  failed = %s\n", where)
	fmt.Fprintf(t.w, "  assertion = equal_to\n")
	fmt.Fprintf(t.w, "  expected = %v\n", want)
	fmt.Fprintf(t.w, "  actual = %v\n", got)
	t.failed++
}

// ExpectNot records an inequality expectation.
func (t *TestState) ExpectNot(got, want interface{}) {
	where := location(2)
	if t.failed > 0 {
		t.skipped++
		return
	}
	if !valuesEqual(got, want) {
		t.passed++
		return
	}
	fmt.Fprintf(t.w, "  failed = %s\n", where)
	fmt.Fprintf(t.w, "  assertion = not_equal_to\n")
	fmt.Fprintf(t.w, "  expected = %v\n", want)
	fmt.Fprintf(t.w, "  actual = %v\n", got)
	t.failed++
}

// ExpectPanic asserts that fn panics.
func (t *TestState) ExpectPanic(fn func()) {
	where := location(2)
	if t.failed > 0 {
		t.skipped++
		return
	}
	panicked := false
	func() {
		defer func() {
			if recover() != nil {
				panicked = true
			}
		}()
		fn()
	}()
	if panicked {
		t.passed++
		return
	}
	fmt.Fprintf(t.w, "  failed = %s\n", where)
	fmt.Fprintf(t.w, "  expected = panics\n")
	fmt.Fprintf(t.w, "  actual = did not panic\n")
	t.failed++
}

// SuiteState accumulates the bookkeeping of one suite execution.
type SuiteState struct {
	suite string
	w     io.Writer

	failed   uint
	passed   uint
	skipped  uint
	uncaught uint
	tests    uint
}

// Test runs a single test closure. A panic escaping the closure is recovered
// and counted as uncaught; execution continues with the next test.
func (s *SuiteState) Test(desc string, fn func(*TestState)) {
	fmt.Fprintf(s.w, "[suite <%s> | %s]\n", s.suite, desc)
	s.tests++
	ts := &TestState{w: s.w}
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(s.w, "  uncaught panic = %v\n", r)
				ts.uncaught++
			}
		}()
		fn(ts)
	}()
	s.failed += ts.failed
	s.passed += ts.passed
	s.skipped += ts.skipped
	s.uncaught += ts.uncaught
}

// Suite is a named collection of tests, registered once and executed against
// any output sink.
type Suite struct {
	name      string
	behaviour func(*SuiteState)
}

// NewSuite registers a suite behaviour under a name.
func NewSuite(name string, behaviour func(*SuiteState)) *Suite {
	return &Suite{name: name, behaviour: behaviour}
}

// Execute runs the suite and writes per-test output plus a summary block to
// w. It returns the number of failed expectations plus uncaught panics, for
// use as a process exit hint.
func (s *Suite) Execute(w io.Writer) uint {
	st := &SuiteState{suite: s.name, w: w}
	s.behaviour(st)
	fmt.Fprintf(w, "[suite <%s> | summary]\n", s.name)
	fmt.Fprintf(w, "  total assertions failed = %d\n", st.failed)
	fmt.Fprintf(w, "  total assertions pass = %d\n", st.passed)
	fmt.Fprintf(w, "  total assertions skipped = %d\n", st.skipped)
	fmt.Fprintf(w, "  total uncaught panics = %d\n", st.uncaught)
	fmt.Fprintf(w, "  total tests = %d\n", st.tests)
	return st.failed + st.uncaught
}
