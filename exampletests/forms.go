package exampletests

import (
	"bytes"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	o "github.com/Kestrun/example-test-harness/framework/opt"
)

const formPath = "/form"
const uploadPath = "/upload"

// Large enough to exceed any sensible example upload limit, small enough to build in memory.
const oversizedUploadBytes = 16 * 1024 * 1024

func doFormTests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityMultipartForms)

	client := NewAppClient(requireContext(t).harness)

	t.Run("urlencoded fields are parsed", func(t *ktest.T) {
		fields := url.Values{}
		fields.Set("firstName", "Ada")
		fields.Set("lastName", "Lovelace")
		resp := client.Do(t, RequestParams{
			Method:  "POST",
			Path:    formPath,
			Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
			Body:    o.Some(fields.Encode()),
		})
		requireStatus(t, resp, 200)
		assert.Contains(t, resp.BodyString(), "Ada")
		assert.Contains(t, resp.BodyString(), "Lovelace")
	})

	t.Run("missing required field is rejected", func(t *ktest.T) {
		fields := url.Values{}
		fields.Set("lastName", "Lovelace")
		resp := client.Do(t, RequestParams{
			Method:  "POST",
			Path:    formPath,
			Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
			Body:    o.Some(fields.Encode()),
		})
		requireStatus(t, resp, 400)
	})

	t.Run("multipart upload round-trips a file", func(t *ktest.T) {
		fileContent := "line one\nline two\n"
		body, contentType := makeMultipartBody(t, map[string]string{"description": "notes"},
			"file", "notes.txt", fileContent)
		resp := client.Do(t, RequestParams{
			Method:  "POST",
			Path:    uploadPath,
			Headers: map[string]string{"Content-Type": contentType},
			Body:    o.Some(body),
		})
		requireStatus(t, resp, 200)
		assert.Contains(t, resp.BodyString(), "notes.txt")
	})

	t.Run("oversized upload is rejected", func(t *ktest.T) {
		fileContent := strings.Repeat("x", oversizedUploadBytes)
		body, contentType := makeMultipartBody(t, nil, "file", "big.bin", fileContent)
		resp := client.Do(t, RequestParams{
			Method:  "POST",
			Path:    uploadPath,
			Headers: map[string]string{"Content-Type": contentType},
			Body:    o.Some(body),
		})
		requireStatus(t, resp, 413)
	})
}

func makeMultipartBody(
	t helpers.TestContext,
	fields map[string]string,
	fileField, fileName, fileContent string,
) (body, contentType string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	part, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(fileContent))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.String(), w.FormDataContentType()
}
