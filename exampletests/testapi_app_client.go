package exampletests

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/framework/harness"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	o "github.com/Kestrun/example-test-harness/framework/opt"
)

const defaultRequestTimeout = time.Second * 10

// AppClient issues HTTP requests against the example app's base URL and captures the
// responses for assertions. All transport-level failures are reported through the test
// scope; tests only see responses that were actually received.
type AppClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAppClient(h *harness.TestHarness) *AppClient {
	return &AppClient{
		baseURL:    strings.TrimSuffix(h.BaseURL(), "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// RequestParams describes one request to send to the app.
type RequestParams struct {
	Method  string // defaults to GET
	Path    string
	Query   string // raw query string, without the "?"
	Headers map[string]string
	Body    o.Maybe[string]
}

// ResponseInfo is the captured response to a request.
type ResponseInfo struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// BodyString returns the response body as a string.
func (r ResponseInfo) BodyString() string { return string(r.Body) }

// ContentType returns the media type portion of the Content-Type header, without any
// charset parameters.
func (r ResponseInfo) ContentType() string {
	ct := r.Headers.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// URL returns an absolute URL for a path under the app's base URL.
func (c *AppClient) URL(path string) string {
	return c.baseURL + path
}

// Do sends a request and returns the captured response, terminating the test on any
// transport-level error.
func (c *AppClient) Do(t *ktest.T, p RequestParams) ResponseInfo {
	t.Helper()

	method := p.Method
	if method == "" {
		method = "GET"
	}
	url := c.URL(p.Path)
	if p.Query != "" {
		url += "?" + p.Query
	}
	var bodyReader io.Reader
	if p.Body.IsDefined() {
		bodyReader = strings.NewReader(p.Body.Value())
	}
	req, err := http.NewRequest(method, url, bodyReader)
	require.NoError(t, err)
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	t.Debug("sending %s %s", method, url)
	resp, err := c.httpClient.Do(req)
	require.NoError(t, err, "request to the app failed")
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "could not read response body from the app")
	t.Debug("received status %d with %d body bytes", resp.StatusCode, len(body))

	return ResponseInfo{Status: resp.StatusCode, Headers: resp.Header, Body: body}
}

// Get is a shortcut for a GET request with no headers or body.
func (c *AppClient) Get(t *ktest.T, path string) ResponseInfo {
	t.Helper()
	return c.Do(t, RequestParams{Path: path})
}

func requireStatus(t helpers.TestContext, resp ResponseInfo, expected int) {
	t.Helper()
	require.Equal(t, expected, resp.Status, "unexpected response status (body was: %s)", resp.BodyString())
}
