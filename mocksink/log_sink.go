// Package mocksink contains mock services that the harness hosts and that example apps
// are pointed at, such as a webhook receiver for structured log output.
package mocksink

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/Kestrun/example-test-harness/framework"
	"github.com/Kestrun/example-test-harness/framework/helpers"
)

// Somewhat arbitrary buffer size for the channel that we use as a queue for received log
// events. We don't want the HTTP handler to block if the test logic doesn't happen to be
// consuming events immediately.
const logEventsChannelBufferSize = 100

// LogEvent is one structured log record delivered by an example app to the sink.
type LogEvent struct {
	// Raw is the JSON payload exactly as received.
	Raw ldvalue.Value

	// Received is the time the sink accepted the event.
	Received time.Time
}

// GetString returns a top-level string property of the event, or "" if absent.
func (e LogEvent) GetString(name string) string {
	return e.Raw.GetByKey(name).StringValue()
}

// LogSink is an HTTP service that receives structured JSON log events posted by an
// example app. Events may be posted one at a time or as a JSON array. This is a low-level
// component; most tests use the exampletests facade for it.
type LogSink struct {
	Events chan LogEvent

	router *mux.Router
	logger framework.Logger
}

func NewLogSink(debugLogger framework.Logger) *LogSink {
	s := &LogSink{
		Events: make(chan LogEvent, logEventsChannelBufferSize),
		logger: debugLogger,
	}
	router := mux.NewRouter()
	router.HandleFunc("/", s.postEvents).Methods("POST")
	router.HandleFunc("/events", s.postEvents).Methods("POST")
	s.router = router
	return s
}

func (s *LogSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Printf("Log sink received %s %s", r.Method, r.URL)
	s.router.ServeHTTP(w, r)
}

// AwaitEvent waits for the next log event to arrive.
func (s *LogSink) AwaitEvent(timeout time.Duration) (LogEvent, bool) {
	event := helpers.TryReceive(s.Events, timeout)
	return event.Value(), event.IsDefined()
}

// RequireEvent waits for the next log event and causes the test to fail and terminate if
// none arrives in time.
func (s *LogSink) RequireEvent(t helpers.TestContext, timeout time.Duration) LogEvent {
	return helpers.RequireValueWithMessage(t, s.Events, timeout,
		"timed out waiting for a log event to reach the sink")
}

// RequireNoMoreEvents causes the test to fail and terminate if any further log event
// arrives within the timeout.
func (s *LogSink) RequireNoMoreEvents(t helpers.TestContext, timeout time.Duration) {
	helpers.RequireNoMoreValuesWithMessage(t, s.Events, timeout,
		"did not expect another log event to reach the sink, but got one")
}

func (s *LogSink) postEvents(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Printf("Unable to read log sink request body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	parsed := ldvalue.Parse(data)
	if parsed.IsNull() {
		s.logger.Printf("Log sink received non-JSON payload: %s", string(data))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	now := time.Now()
	if parsed.Type() == ldvalue.ArrayType {
		for i := 0; i < parsed.Count(); i++ {
			s.push(LogEvent{Raw: parsed.GetByIndex(i), Received: now})
		}
	} else {
		s.push(LogEvent{Raw: parsed, Received: now})
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *LogSink) push(event LogEvent) {
	if !helpers.NonBlockingSend(s.Events, event) {
		s.logger.Printf("Log sink event queue was full, dropping an event")
	}
}
