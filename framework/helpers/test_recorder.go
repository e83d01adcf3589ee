package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// TestRecorder is a TestContext implementation for testing our own assertion helpers:
// it records failures instead of terminating anything.
type TestRecorder struct {
	// Errors accumulates the formatted messages from every Errorf call.
	Errors []string

	// Terminated is set if FailNow was called.
	Terminated bool

	// PanicOnTerminate, if set, makes FailNow panic with a pointer to this TestRecorder.
	// That mimics how a real test scope unwinds, so helpers that are expected to stop
	// the test can be verified with assert.Panics.
	PanicOnTerminate bool
}

func (t *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	t.Errors = append(t.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (t *TestRecorder) FailNow() {
	t.Terminated = true
	if t.PanicOnTerminate {
		panic(t)
	}
}

func (t *TestRecorder) Helper() {}

// Err returns nil if no failures were recorded, or else a single error combining
// all of the recorded messages.
func (t *TestRecorder) Err() error {
	if len(t.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(t.Errors, ", "))
}
