package exampletests

import (
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	"github.com/Kestrun/example-test-harness/mocksink"
)

const logEventTimeout = time.Second * 5
const logQuiescenceWindow = time.Millisecond * 500

func doLoggingTests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityLogWebhook)

	ctx := requireContext(t)
	if ctx.logSink == nil {
		t.SkipWithReason("harness did not launch the app, so no log sink URL could be injected")
	}
	client := NewAppClient(ctx.harness)

	t.Run("requests produce access log events", func(t *ktest.T) {
		drainLogEvents(ctx.logSink)

		resp := client.Get(t, "/hello")
		requireStatus(t, resp, 200)

		event := awaitAccessLogEvent(t, ctx.logSink, "/hello", logEventTimeout)
		assert.Equal(t, "GET", event.GetString("method"))
		assert.Equal(t, 200, event.Raw.GetByKey("status").IntValue())
	})

	t.Run("no events after quiescence", func(t *ktest.T) {
		drainLogEvents(ctx.logSink)
		ctx.logSink.RequireNoMoreEvents(t, logQuiescenceWindow)
	})
}

// awaitAccessLogEvent waits for an access log event for the given path, skipping over any
// unrelated events the app may emit in between.
func awaitAccessLogEvent(
	t helpers.TestContext,
	sink *mocksink.LogSink,
	path string,
	timeout time.Duration,
) mocksink.LogEvent {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Errorf("timed out waiting for an access log event for %s", path)
			t.FailNow()
			return mocksink.LogEvent{}
		}
		event, ok := sink.AwaitEvent(remaining)
		if !ok {
			t.Errorf("timed out waiting for an access log event for %s", path)
			t.FailNow()
			return mocksink.LogEvent{}
		}
		if event.GetString("path") == path {
			return event
		}
	}
}

func drainLogEvents(sink *mocksink.LogSink) {
	for {
		if _, ok := sink.AwaitEvent(time.Millisecond * 100); !ok {
			return
		}
	}
}
