package exampletests

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/ktest"
)

const missingPath = "/this/route/does/not/exist"
const throwingPath = "/throw"

func doStatusPageTests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityStatusCodePages)

	client := NewAppClient(requireContext(t).harness)

	t.Run("custom 404 page", func(t *ktest.T) {
		resp := client.Do(t, RequestParams{
			Path:    missingPath,
			Headers: map[string]string{"Accept": "text/html"},
		})
		requireStatus(t, resp, 404)
		assert.Equal(t, "text/html", resp.ContentType())
		assert.NotEmpty(t, resp.Body, "custom 404 page had no body")
	})

	t.Run("404 negotiates JSON when asked", func(t *ktest.T) {
		resp := client.Do(t, RequestParams{
			Path:    missingPath,
			Headers: map[string]string{"Accept": "application/json"},
		})
		requireStatus(t, resp, 404)
		assert.Equal(t, "application/json", resp.ContentType())

		doc := ldvalue.Parse(resp.Body)
		require.Equal(t, ldvalue.ObjectType, doc.Type(), "negotiated 404 body was not a JSON object")
		assert.Equal(t, 404, doc.GetByKey("status").IntValue())
	})

	t.Run("custom 500 page", func(t *ktest.T) {
		resp := client.Do(t, RequestParams{
			Path:    throwingPath,
			Headers: map[string]string{"Accept": "text/html"},
		})
		requireStatus(t, resp, 500)
		assert.Equal(t, "text/html", resp.ContentType())
		assert.NotEmpty(t, resp.Body, "custom 500 page had no body")
	})
}
