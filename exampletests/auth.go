package exampletests

import (
	"encoding/base64"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/ktest"
)

// Credentials that example apps with auth routes are expected to accept. These match the
// values used throughout the Kestrun tutorial examples.
const (
	basicAuthUser     = "admin"
	basicAuthPassword = "password123"
	apiKeyHeaderName  = "X-Api-Key"
	apiKeyValue       = "my-sample-api-key"
	bearerTokenValue  = "sample-token"
)

const (
	basicAuthPath  = "/secure/basic"
	apiKeyAuthPath = "/secure/apikey"
	bearerAuthPath = "/secure/bearer"
	openPath       = "/hello"
)

func doAuthTests(t *ktest.T) {
	client := NewAppClient(requireContext(t).harness)

	t.Run("basic auth", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityBasicAuth)

		t.Run("request without credentials is challenged", func(t *ktest.T) {
			resp := client.Get(t, basicAuthPath)
			requireStatus(t, resp, 401)
			challenge := resp.Headers.Get("WWW-Authenticate")
			assert.True(t, strings.HasPrefix(challenge, "Basic"),
				"expected a Basic challenge in WWW-Authenticate, got %q", challenge)
		})

		t.Run("request with wrong credentials is rejected", func(t *ktest.T) {
			resp := client.Do(t, RequestParams{
				Path:    basicAuthPath,
				Headers: map[string]string{"Authorization": basicAuthHeader(basicAuthUser, "wrong-password")},
			})
			requireStatus(t, resp, 401)
		})

		t.Run("request with correct credentials succeeds", func(t *ktest.T) {
			resp := client.Do(t, RequestParams{
				Path:    basicAuthPath,
				Headers: map[string]string{"Authorization": basicAuthHeader(basicAuthUser, basicAuthPassword)},
			})
			requireStatus(t, resp, 200)
		})
	})

	t.Run("api key auth", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityAPIKeyAuth)

		t.Run("request without key is rejected", func(t *ktest.T) {
			resp := client.Get(t, apiKeyAuthPath)
			requireStatus(t, resp, 401)
		})

		t.Run("request with wrong key is rejected", func(t *ktest.T) {
			resp := client.Do(t, RequestParams{
				Path:    apiKeyAuthPath,
				Headers: map[string]string{apiKeyHeaderName: "not-the-key"},
			})
			requireStatus(t, resp, 401)
		})

		t.Run("request with correct key succeeds", func(t *ktest.T) {
			resp := client.Do(t, RequestParams{
				Path:    apiKeyAuthPath,
				Headers: map[string]string{apiKeyHeaderName: apiKeyValue},
			})
			requireStatus(t, resp, 200)
		})
	})

	t.Run("bearer token auth", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityBearerAuth)

		t.Run("request without token is rejected", func(t *ktest.T) {
			resp := client.Get(t, bearerAuthPath)
			requireStatus(t, resp, 401)
		})

		t.Run("request with token succeeds", func(t *ktest.T) {
			resp := client.Do(t, RequestParams{
				Path:    bearerAuthPath,
				Headers: map[string]string{"Authorization": "Bearer " + bearerTokenValue},
			})
			requireStatus(t, resp, 200)
		})
	})

	t.Run("open route needs no credentials", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityRouting)
		resp := client.Get(t, openPath)
		requireStatus(t, resp, 200)
	})
}

func basicAuthHeader(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
