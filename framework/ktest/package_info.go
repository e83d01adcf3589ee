// Package ktest is a test runner framework, similar in compact form to Go's testing
// package, for the example server conformance tests.
//
// We do not use the Go test runner here because these tests are run against an
// application that was started outside of "go test", the pass/fail results need to be
// reported in multiple formats (console and JUnit), and tests are selected dynamically
// with command-line filters and capability checks rather than at compile time. The T
// type deliberately mirrors testing.T closely enough that assertion libraries such as
// testify work against it unchanged.
package ktest
