package exampletests

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/data"
	"github.com/Kestrun/example-test-harness/data/testmodel"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

func doRoutingTests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityRouting)

	client := NewAppClient(requireContext(t).harness)

	for _, suite := range getAllRouteTestSuites(t, "route-tests") {
		t.Run(suite.Name, func(t *ktest.T) {
			if suite.RequireCapability != "" {
				t.RequireCapability(suite.RequireCapability)
			}
			for _, test := range suite.Requests {
				t.Run(test.Name, func(t *ktest.T) {
					resp := client.Do(t, RequestParams{
						Method:  test.Method,
						Path:    test.Path,
						Query:   test.Query,
						Headers: test.Headers,
						Body:    test.Body,
					})
					assertRouteExpectation(t, resp, test.Expect)
				})
			}
		})
	}
}

func getAllRouteTestSuites(t *ktest.T, dirName string) []testmodel.RouteTestSuite {
	sources, err := data.LoadAllDataFiles(dirName)
	require.NoError(t, err)
	ret := make([]testmodel.RouteTestSuite, 0, len(sources))
	for _, source := range sources {
		var suite testmodel.RouteTestSuite
		require.NoError(t, source.ParseInto(&suite))
		ret = append(ret, suite)
	}
	return ret
}

func assertRouteExpectation(t helpers.TestContext, resp ResponseInfo, expect testmodel.RouteExpectation) {
	t.Helper()

	if expect.Status != 0 {
		requireStatus(t, resp, expect.Status)
	}
	if expect.ContentType != "" {
		assert.Equal(t, expect.ContentType, resp.ContentType())
	}
	if expect.Body.IsDefined() {
		assert.Equal(t, expect.Body.Value(), strings.TrimSuffix(resp.BodyString(), "\n"))
	}
	for _, substring := range expect.BodyContains {
		assert.Contains(t, resp.BodyString(), substring)
	}
	if !expect.BodyJSON.IsNull() {
		helpers.AssertJSONEqual(t,
			helpers.CanonicalizedJSONString(expect.BodyJSON),
			helpers.CanonicalizedJSONString(ldvalue.Parse(resp.Body)))
	}
	for name, value := range expect.Headers {
		assert.Equal(t, value, resp.Headers.Get(name))
	}
}
