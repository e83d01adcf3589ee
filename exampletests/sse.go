package exampletests

import (
	"net/http"
	"time"

	"github.com/launchdarkly/eventsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
)

const ssePath = "/sse"
const sseEventTimeout = time.Second * 10

func doSSETests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilitySSE)

	client := NewAppClient(requireContext(t).harness)

	t.Run("stream delivers events in order", func(t *ktest.T) {
		stream := subscribeToStream(t, client, "")

		var lastID string
		for i := 0; i < 3; i++ {
			event := requireStreamEvent(t, stream)
			assert.NotEmpty(t, event.Data(), "SSE event had no data")
			if t.Capabilities().Has(appdef.CapabilitySSEResume) {
				require.NotEmpty(t, event.Id(), "app advertises sse-resume but event had no id")
				assert.NotEqual(t, lastID, event.Id(), "event ids must change between events")
				lastID = event.Id()
			}
		}
	})

	t.Run("stream stays open between events", func(t *ktest.T) {
		stream := subscribeToStream(t, client, "")

		_ = requireStreamEvent(t, stream)
		select {
		case err := <-stream.Errors:
			t.Errorf("stream reported an error while it should have stayed open: %s", err)
		case <-time.After(time.Millisecond * 500):
		}
		// the stream should still be producing
		_ = requireStreamEvent(t, stream)
	})

	t.Run("resume with Last-Event-ID", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilitySSEResume)

		stream := subscribeToStream(t, client, "")
		first := requireStreamEvent(t, stream)
		second := requireStreamEvent(t, stream)
		stream.Close()

		resumed := subscribeToStream(t, client, first.Id())
		event := requireStreamEvent(t, resumed)
		assert.NotEqual(t, first.Id(), event.Id(),
			"resumed stream replayed the event the client said it already had")
		assert.Equal(t, second.Id(), event.Id(),
			"resumed stream did not continue from the Last-Event-ID position")
	})
}

func subscribeToStream(t *ktest.T, client *AppClient, lastEventID string) *eventsource.Stream {
	t.Helper()
	req, err := http.NewRequest("GET", client.URL(ssePath), nil)
	require.NoError(t, err)
	stream, err := eventsource.SubscribeWithRequest(lastEventID, req)
	require.NoError(t, err, "could not open SSE stream")
	t.Defer(stream.Close)
	return stream
}

func requireStreamEvent(t *ktest.T, stream *eventsource.Stream) eventsource.Event {
	t.Helper()
	return helpers.RequireValueWithMessage(t, stream.Events, sseEventTimeout,
		"timed out waiting for an SSE event")
}
