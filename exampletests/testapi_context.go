package exampletests

import (
	"github.com/Kestrun/example-test-harness/framework/harness"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	"github.com/Kestrun/example-test-harness/mocksink"
)

// ExampleTestContext is the shared state that the entry point passes down to every test
// scope in this package.
type ExampleTestContext struct {
	harness *harness.TestHarness

	// logSink receives structured log events from the app, if the harness launched the
	// app itself and could therefore point it at the sink. It is nil in attach mode.
	logSink *mocksink.LogSink
}

func requireContext(t *ktest.T) ExampleTestContext {
	if c, ok := t.Context().(ExampleTestContext); ok {
		return c
	}
	panic("ExampleTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}
