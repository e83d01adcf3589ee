// Package testmodel contains the data structures that embedded test data files are
// parsed into.
package testmodel

import (
	o "github.com/Kestrun/example-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// RouteTestSuite is one embedded data file describing a group of request/response
// expectations against an example app.
type RouteTestSuite struct {
	Name              string      `json:"name"`
	RequireCapability string      `json:"requireCapability"`
	Requests          []RouteTest `json:"requests"`
}

func (s RouteTestSuite) GetName() string { return s.Name }

// RouteTest is a single request to issue and the response shape to expect.
type RouteTest struct {
	Name    string            `json:"name"`
	Method  string            `json:"method"` // defaults to GET
	Path    string            `json:"path"`
	Query   string            `json:"query"` // raw query string, without the "?"
	Headers map[string]string `json:"headers"`
	Body    o.Maybe[string]   `json:"body"`
	Expect  RouteExpectation  `json:"expect"`
}

// RouteExpectation describes the response assertions for a RouteTest. Absent fields
// are not asserted.
type RouteExpectation struct {
	Status       int               `json:"status"`
	ContentType  string            `json:"contentType"`
	Body         o.Maybe[string]   `json:"body"`         // exact match after trimming trailing newline
	BodyContains []string          `json:"bodyContains"` // substring matches
	BodyJSON     ldvalue.Value     `json:"bodyJSON"`     // deep JSON equality
	Headers      map[string]string `json:"headers"`
}
