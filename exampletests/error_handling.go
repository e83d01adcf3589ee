package exampletests

import (
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	m "github.com/Kestrun/example-test-harness/framework/matchers"
)

func doErrorHandlingTests(t *ktest.T) {
	client := NewAppClient(requireContext(t).harness)

	t.Run("unhandled exception yields 500", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityRouting)
		resp := client.Get(t, throwingPath)
		requireStatus(t, resp, 500)
	})

	t.Run("error response leaks no stack trace", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityRouting)
		resp := client.Get(t, throwingPath)
		requireStatus(t, resp, 500)

		body := resp.BodyString()
		for _, marker := range []string{"   at ", "StackTrace", "InnerException"} {
			assert.False(t, strings.Contains(body, marker),
				"error response appears to contain a stack trace (found %q)", marker)
		}
	})

	t.Run("problem details body", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityProblemDetails)

		resp := client.Do(t, RequestParams{
			Path:    throwingPath,
			Headers: map[string]string{"Accept": "application/problem+json"},
		})
		requireStatus(t, resp, 500)
		assert.Equal(t, "application/problem+json", resp.ContentType())

		doc := ldvalue.Parse(resp.Body)
		require.Equal(t, ldvalue.ObjectType, doc.Type(), "problem details body was not a JSON object")
		m.AssertThat(t, doc, m.AllOf(
			m.JSONProperty("title").Should(m.Not(m.JSONEqual(nil))),
			m.JSONProperty("status").Should(m.JSONEqual(500)),
		))
	})
}
