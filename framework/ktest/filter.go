package ktest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Kestrun/example-test-harness/framework"
)

// Filter decides whether to run a specific test, based on its ID.
type Filter interface {
	Match(id TestID) bool
}

// SelfDescribingFilter is a Filter that can print an explanation of its criteria at the
// start of a test run.
type SelfDescribingFilter interface {
	Describe(w io.Writer, supportedCapabilities framework.Capabilities, importantCapabilities framework.Capabilities)
}

// RegexFilters is a Filter based on optional lists of patterns that test IDs must match,
// and must not match, to be run.
type RegexFilters struct {
	MustMatch    TestIDPatternList
	MustNotMatch TestIDPatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

func (r RegexFilters) Describe(
	w io.Writer,
	supportedCapabilities framework.Capabilities,
	importantCapabilities framework.Capabilities,
) {
	if r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined() {
		fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if r.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", r.MustMatch)
		}
		if r.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", r.MustNotMatch)
		}
		fmt.Fprintln(w)
	}

	if len(importantCapabilities) != 0 {
		var missingCapabilities []string
		for _, c := range importantCapabilities {
			if !supportedCapabilities.Has(c) {
				missingCapabilities = append(missingCapabilities, c)
			}
		}
		if len(missingCapabilities) > 0 {
			fmt.Fprintln(w, "Some tests may be skipped because the application does not support the following capabilities:")
			fmt.Fprintf(w, "  %s\n", strings.Join(missingCapabilities, ", "))
			fmt.Fprintln(w)
		}
	}
}

// TestIDPattern is a parsed filter pattern: one regex per test ID level, separated by
// slashes in the input syntax.
type TestIDPattern []*regexp.Regexp

// Match tests the pattern against an ID level by level. If the pattern is longer than
// the ID, includeParents determines whether a partial (ancestor) match counts; that is
// how a filter for "a/b" can allow parent scope "a" to run at all.
func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	min := len(p)
	if min > len(id) {
		if !includeParents {
			return false
		}
		min = len(id)
	}
	for i := 0; i < min; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, c := range p {
		ss = append(ss, c.String())
	}
	return strings.Join(ss, "/")
}

// ParseTestIDPattern compiles a slash-separated list of regexes.
func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

// TestIDPatternList is a list of patterns, any one of which may match.
type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}
