package helpers

import (
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
)

func TestAsJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, AsJSONString(map[string]int{"a": 1}))
	assert.Equal(t, []byte(`[1,2]`), AsJSON([]int{1, 2}))
	assert.Equal(t, ldvalue.Bool(true), AsJSONValue(true))
}

func TestCanonicalizedJSONString(t *testing.T) {
	v := ldvalue.Parse([]byte(`{"b": [3, {"z": 1, "a": 2}], "a": "x"}`))
	assert.Equal(t, `{"a":"x","b":[3,{"a":2,"z":1}]}`, CanonicalizedJSONString(v))

	assert.Equal(t,
		CanonicalizedJSONString(ldvalue.Parse([]byte(`{"one":1,"two":2}`))),
		CanonicalizedJSONString(ldvalue.Parse([]byte(`{"two":2,"one":1}`))))

	assert.Equal(t, `"plain"`, CanonicalizedJSONString(ldvalue.String("plain")))
	assert.Equal(t, `null`, CanonicalizedJSONString(ldvalue.Null()))
}
