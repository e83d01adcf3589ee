package exampletests

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/data"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	m "github.com/Kestrun/example-test-harness/framework/matchers"
)

const openAPIJSONPath = "/openapi/v3/openapi.json"
const openAPIYAMLPath = "/openapi/v3/openapi.yaml"

func doOpenAPITests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityOpenAPI)

	client := NewAppClient(requireContext(t).harness)

	t.Run("document has the expected structure", func(t *ktest.T) {
		doc := fetchOpenAPIDocument(t, client)

		m.AssertThat(t, doc.GetByKey("openapi").StringValue(), m.StringHasPrefix("3."))
		m.AssertThat(t, doc, m.JSONProperty("info").Should(
			m.JSONProperty("title").Should(m.Not(m.JSONEqual(nil))),
		))
		assert.NotEmpty(t, doc.GetByKey("info").GetByKey("title").StringValue(), "info.title is empty")
		paths, ok := doc.TryGetByKey("paths")
		require.True(t, ok, "document has no paths object")
		assert.NotEmpty(t, paths.Keys(nil), "paths object is empty")
	})

	t.Run("document matches the recorded fixture", func(t *ktest.T) {
		appName := requireContext(t).harness.AppInfo().Name
		fixture, found, err := data.LoadOpenAPIFixture(appName)
		require.NoError(t, err)
		if !found {
			t.SkipWithReason("no recorded OpenAPI fixture for this app")
		}

		doc := fetchOpenAPIDocument(t, client)
		helpers.AssertJSONEqual(t,
			helpers.CanonicalizedJSONString(ldvalue.Parse(fixture)),
			helpers.CanonicalizedJSONString(doc))
	})

	t.Run("YAML variant describes the same document", func(t *ktest.T) {
		resp := client.Get(t, openAPIYAMLPath)
		if resp.Status == 404 {
			t.SkipWithReason("app does not serve a YAML variant")
		}
		requireStatus(t, resp, 200)

		var yamlDoc interface{}
		require.NoError(t, data.ParseJSONOrYAML(resp.Body, &yamlDoc), "YAML document did not parse")

		jsonDoc := fetchOpenAPIDocument(t, client)
		helpers.AssertJSONEqual(t,
			helpers.CanonicalizedJSONString(jsonDoc),
			helpers.CanonicalizedJSONString(helpers.AsJSONValue(yamlDoc)))
	})
}

func fetchOpenAPIDocument(t *ktest.T, client *AppClient) ldvalue.Value {
	t.Helper()
	resp := client.Get(t, openAPIJSONPath)
	requireStatus(t, resp, 200)
	assert.Equal(t, "application/json", resp.ContentType())
	doc := ldvalue.Parse(resp.Body)
	require.Equal(t, ldvalue.ObjectType, doc.Type(), "OpenAPI document was not a JSON object")
	return doc
}
