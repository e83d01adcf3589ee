package exampletests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kestrun/example-test-harness/data/testmodel"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	o "github.com/Kestrun/example-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

func makeRouteResponse(status int, contentType, body string) ResponseInfo {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	return ResponseInfo{Status: status, Headers: headers, Body: []byte(body)}
}

func TestAssertRouteExpectationPasses(t *testing.T) {
	resp := makeRouteResponse(200, "application/json; charset=utf-8", `{"message":"hello","count":3}`)

	var tr helpers.TestRecorder
	assertRouteExpectation(&tr, resp, testmodel.RouteExpectation{
		Status:       200,
		ContentType:  "application/json",
		BodyContains: []string{"hello"},
		BodyJSON:     ldvalue.Parse([]byte(`{"count":3,"message":"hello"}`)),
		Headers:      map[string]string{"Content-Type": "application/json; charset=utf-8"},
	})
	assert.NoError(t, tr.Err())
}

func TestAssertRouteExpectationIgnoresTrailingNewlineInExactBody(t *testing.T) {
	resp := makeRouteResponse(200, "text/plain", "Hello, World!\n")

	var tr helpers.TestRecorder
	assertRouteExpectation(&tr, resp, testmodel.RouteExpectation{
		Status: 200,
		Body:   o.Some("Hello, World!"),
	})
	assert.NoError(t, tr.Err())
}

func TestAssertRouteExpectationReportsBodyMismatch(t *testing.T) {
	resp := makeRouteResponse(200, "text/plain", "goodbye")

	var tr helpers.TestRecorder
	assertRouteExpectation(&tr, resp, testmodel.RouteExpectation{
		Status:       200,
		BodyContains: []string{"hello"},
	})
	assert.Error(t, tr.Err())
}

func TestAssertRouteExpectationStopsOnWrongStatus(t *testing.T) {
	resp := makeRouteResponse(404, "text/plain", "not here")

	tr := helpers.TestRecorder{PanicOnTerminate: true}
	assert.Panics(t, func() {
		assertRouteExpectation(&tr, resp, testmodel.RouteExpectation{Status: 200})
	})
	assert.True(t, tr.Terminated)
}
