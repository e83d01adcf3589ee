package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kestrun/example-test-harness/framework"
)

const httpListenerTimeout = time.Second * 10

// TestHarness is the main component that manages communication with an example app.
//
// It always communicates with a single app, which it verifies is alive on startup.
// It can also create any number of callback endpoints for the app to interact with
// (NewMockEndpoint), such as webhook receivers.
//
// It contains no domain-specific test logic, but only provides a general mechanism for
// test suites to build on.
type TestHarness struct {
	appBaseURL    string
	appInfo       AppInfo
	mockEndpoints *mockEndpointsManager
	logger        framework.Logger
}

// NewTestHarness creates a TestHarness instance and starts an HTTP listener on the
// specified port to receive callback requests. It does not contact the example app;
// callback endpoints have to exist before the app is launched, because some apps are
// given a callback URL in their environment. Call AwaitAppReady once the app has been
// started or attached.
func NewTestHarness(
	appBaseURL string,
	harnessExternalHostname string,
	harnessPort int,
	debugLogger framework.Logger,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}

	externalBaseURL := fmt.Sprintf("http://%s:%d", harnessExternalHostname, harnessPort)

	h := &TestHarness{
		appBaseURL:    appBaseURL,
		mockEndpoints: newMockEndpointsManager(externalBaseURL, debugLogger),
		logger:        debugLogger,
	}

	if err := startServer(harnessPort, http.HandlerFunc(h.serveHTTP)); err != nil {
		return nil, err
	}

	return h, nil
}

// AwaitAppReady verifies that the example app is responding by polling its status
// resource until it answers or the timeout elapses.
func (h *TestHarness) AwaitAppReady(statusQueryTimeout time.Duration, startupOutput io.Writer) error {
	appInfo, err := queryAppInfo(h.appBaseURL, statusQueryTimeout, startupOutput)
	if err != nil {
		return err
	}
	h.appInfo = appInfo
	return nil
}

// BaseURL returns the base URL of the example app under test.
func (h *TestHarness) BaseURL() string {
	return h.appBaseURL
}

// AppInfo returns the initial status information received from the example app.
func (h *TestHarness) AppInfo() AppInfo {
	return h.appInfo
}

// NewMockEndpoint adds a new endpoint that can receive requests.
//
// The specified handler will be called for all incoming requests to the endpoint's
// base URL or any subpath of it. For instance, if the generated base URL (as reported
// by MockEndpoint.BaseURL()) is http://localhost:8111/endpoints/3, then it can also
// receive requests to http://localhost:8111/endpoints/3/some/subpath.
//
// When the handler is called, the test harness rewrites the request URL first so that
// the handler sees only the subpath. It also attaches a Context to the request whose
// Done channel will be closed if Close is called on the endpoint.
func (h *TestHarness) NewMockEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...MockEndpointOption,
) *MockEndpoint {
	if logger == nil {
		logger = h.logger
	}
	return h.mockEndpoints.newMockEndpoint(handler, logger, options...)
}

func (h *TestHarness) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == "HEAD" {
		w.WriteHeader(200) // we use this to test whether our own listener is active yet
		return
	}
	h.mockEndpoints.serveHTTP(w, r)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // arbitrary but non-infinite timeout to avoid Slowloris Attack
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			_, _, err := doRequest("HEAD", fmt.Sprintf("http://localhost:%d", port), nil)
			if err == nil {
				return nil
			}
		}
	}
}
