package ktest

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a whole test run.
type Results struct {
	Tests               []TestResult
	Failures            []TestResult
	NonCriticalFailures []TestResult
}

// TestResult is the outcome of a single test scope.
type TestResult struct {
	TestID      TestID
	Errors      []error
	NonCritical bool
	Explanation string
}

// OK returns true if there were no critical failures. Non-critical failures are
// reported but do not affect the exit status.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test scope as the list of names from the root scope downward.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with one more name appended.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// TestFailure pairs a test identifier with one of its errors, for contexts where a
// single error value is needed.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
