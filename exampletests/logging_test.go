package exampletests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/Kestrun/example-test-harness/framework"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/mocksink"
)

func makeAccessLogEvent(method, path string) mocksink.LogEvent {
	raw := ldvalue.Parse([]byte(`{"method":"` + method + `","path":"` + path + `"}`))
	return mocksink.LogEvent{Raw: raw, Received: time.Now()}
}

func TestAwaitAccessLogEventSkipsUnrelatedEvents(t *testing.T) {
	sink := mocksink.NewLogSink(framework.NullLogger())
	sink.Events <- makeAccessLogEvent("GET", "/other")
	sink.Events <- makeAccessLogEvent("GET", "/hello")

	var tr helpers.TestRecorder
	event := awaitAccessLogEvent(&tr, sink, "/hello", time.Second)
	require.NoError(t, tr.Err())
	assert.Equal(t, "/hello", event.GetString("path"))
	assert.Equal(t, "GET", event.GetString("method"))
}

func TestAwaitAccessLogEventTimesOut(t *testing.T) {
	sink := mocksink.NewLogSink(framework.NullLogger())

	tr := helpers.TestRecorder{PanicOnTerminate: true}
	assert.Panics(t, func() {
		_ = awaitAccessLogEvent(&tr, sink, "/hello", time.Millisecond*50)
	})
	require.Len(t, tr.Errors, 1)
	assert.Contains(t, tr.Errors[0], "/hello")
}
