package matchers

import (
	"strings"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

func TestJSONEqual(t *testing.T) {
	assertPasses(t, []byte(`[1,2]`), JSONEqual([]int{1, 2}))
	assertPasses(t, ldvalue.String("x"), JSONEqual("x"))
	assertPasses(t, `{"a":1}`, JSONEqual(map[string]int{"a": 1}))
	assertPasses(t, `3`, JSONEqual(3))
	assertPasses(t, `null`, JSONEqual(nil))

	// A plain string is marshaled as a JSON string, not parsed as JSON text
	assertPasses(t, `"hello"`, JSONEqual("hello"))
	assertFails(t, `{"a":1}`, JSONEqual(`{"a":1}`),
		"expected: JSON equal to \"{\\\"a\\\":1}\"\nactual value was: {\"a\":1}")
}

func TestJSONStrEqual(t *testing.T) {
	assertPasses(t, `{"a":1,"b":2}`, JSONStrEqual(`{"b":2,"a":1}`))
	assertPasses(t, ldvalue.String("x"), JSONStrEqual(`"x"`))

	assertFails(t, `{"a":1}`, JSONStrEqual(`{"a":2}`),
		"expected: JSON equal to {\"a\":2}\nactual value was: {\"a\":1}")
}

func TestJSONProperty(t *testing.T) {
	body := `{"message":"hello","count":3}`

	assertPasses(t, body, JSONProperty("message").Should(JSONEqual("hello")))
	assertPasses(t, body, JSONProperty("count").Should(JSONEqual(3)))

	pass, desc := JSONProperty("missing").Should(JSONEqual(1)).Test(body)
	if pass {
		t.Error("expected failure for missing property")
	}
	if !strings.HasPrefix(desc, "expected: JSON property \"missing\" to exist") {
		t.Errorf("unexpected description: %s", desc)
	}
}

func TestJSONOptProperty(t *testing.T) {
	body := `{"message":"hello"}`

	assertPasses(t, body, JSONOptProperty("missing").Should(JSONEqual(nil)))
	assertPasses(t, body, JSONOptProperty("message").Should(JSONEqual("hello")))

	pass, _ := JSONOptProperty("message").Should(JSONEqual("bye")).Test(body)
	if pass {
		t.Error("expected failure for wrong value")
	}
}

func TestTransformWithJSON(t *testing.T) {
	stringLength := Transform("string length",
		func(value interface{}) interface{} { return len(value.(string)) }).
		EnsureInputValueType("")

	assertPasses(t, "abc", stringLength.Should(Equal(3)))
	assertFails(t, "ab", stringLength.Should(Equal(3)),
		"expected: string length equal to 3\nactual value was: ab")
}
