package harness

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/Kestrun/example-test-harness/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAppInfo(t *testing.T) {
	metadata := `{"name": "multiroutes", "capabilities": ["sse", "openapi"], "extra": true}`
	handler := httphelpers.HandlerWithResponse(200, nil, []byte(metadata))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		info, err := queryAppInfo(server.URL, time.Second, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "multiroutes", info.Name)
		assert.Equal(t, framework.Capabilities{"sse", "openapi"}, info.Capabilities)
		assert.Equal(t, []byte(metadata), info.FullData)
	})
}

func TestQueryAppInfoRejectsErrorStatus(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		_, err := queryAppInfo(server.URL, time.Second, io.Discard)
		assert.Error(t, err)
	})
}

func TestQueryAppInfoAcceptsPlainResponseWithNoMetadata(t *testing.T) {
	// Some example apps answer the status query with a plain body rather than the
	// metadata document. They are treated as alive with no declared capabilities.
	for _, body := range []string{"OK", ""} {
		t.Run(fmt.Sprintf("body %q", body), func(t *testing.T) {
			handler := httphelpers.HandlerWithResponse(200, nil, []byte(body))
			httphelpers.WithServer(handler, func(server *httptest.Server) {
				info, err := queryAppInfo(server.URL, time.Second, io.Discard)
				require.NoError(t, err)
				assert.Equal(t, "", info.Name)
				assert.Len(t, info.Capabilities, 0)
			})
		})
	}
}

func TestFilteredWriterDropsMatchingLines(t *testing.T) {
	var buf bytes.Buffer
	w := newFilteredWriter(&buf, []*regexp.Regexp{regexp.MustCompile(`^banner`)})

	_, err := w.Write([]byte("banner: starting up\n"))
	assert.NoError(t, err)
	_, err = w.Write([]byte("real output\n"))
	assert.NoError(t, err)

	assert.Equal(t, "real output\n", buf.String())
}

func TestLineLoggerSplitsAndTrimsLines(t *testing.T) {
	var log framework.CapturingLogger
	w := newLineLogger(&log, "[app] ")

	_, _ = w.Write([]byte("first line\r\nsecond "))
	_, _ = w.Write([]byte("line\npartial"))

	lines := log.Output()
	require.Len(t, lines, 2)
	assert.Equal(t, "[app] first line", lines[0].Message)
	assert.Equal(t, "[app] second line", lines[1].Message)
}
