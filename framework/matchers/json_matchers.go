package matchers

import (
	"encoding/json"
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// JSONEqual tests that the input value is deeply equal to the expected value when both are
// treated as JSON. The expected value can be an ldvalue.Value, a []byte or json.RawMessage
// containing JSON text, or any other value that can be marshaled to JSON. A plain string is
// marshaled, so JSONEqual("hello") matches the JSON string "hello"; use JSONStrEqual to
// compare against a string of JSON text. Object property order is ignored.
func JSONEqual(expectedValue interface{}) Matcher {
	return jsonEqual(jsonValueOf(expectedValue))
}

// JSONStrEqual is like JSONEqual, except that the expected value is a string containing
// JSON text.
func JSONStrEqual(expectedJSONString string) Matcher {
	return jsonEqual(ldvalue.Parse([]byte(expectedJSONString)))
}

func jsonEqual(expected ldvalue.Value) Matcher {
	return New(
		func(value interface{}) bool {
			return jsonOf(value).Equal(expected)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("JSON equal to %s", expected.JSONString())
		},
	).WithValueDescription(describeAsJSON)
}

// JSONPropertyMatcherFactory is an intermediate value returned by JSONProperty; call its
// Should method to produce a Matcher.
type JSONPropertyMatcherFactory struct {
	name     string
	optional bool
}

// JSONProperty tests a named property of a JSON object value. The resulting matcher fails if
// the input value does not have that property.
//
//	matchers.JSONProperty("name").Should(matchers.JSONEqual("hello")).Assert(t, body)
func JSONProperty(name string) JSONPropertyMatcherFactory {
	return JSONPropertyMatcherFactory{name: name}
}

// JSONOptProperty is like JSONProperty, except that a missing property is treated as a JSON
// null instead of failing outright.
func JSONOptProperty(name string) JSONPropertyMatcherFactory {
	return JSONPropertyMatcherFactory{name: name, optional: true}
}

// Should applies a Matcher to the value of the JSON property.
func (j JSONPropertyMatcherFactory) Should(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			v, ok := jsonOf(value).TryGetByKey(j.name)
			if !ok {
				if !j.optional {
					return false
				}
				v = ldvalue.Null()
			}
			return matcher.test(v)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			v, ok := jsonOf(value).TryGetByKey(j.name)
			if !ok && !j.optional {
				return fmt.Sprintf("JSON property %q to exist", j.name)
			}
			return fmt.Sprintf("JSON property %q ", j.name) + matcher.describeFailure(v, describeAsJSON)
		},
	).WithValueDescription(describeAsJSON)
}

// jsonValueOf converts an arbitrary expected value to JSON. Unlike jsonOf, a plain string
// becomes a JSON string rather than being parsed as JSON text.
func jsonValueOf(value interface{}) ldvalue.Value {
	switch v := value.(type) {
	case nil:
		return ldvalue.Null()
	case ldvalue.Value:
		return v
	case json.RawMessage:
		return ldvalue.Parse(v)
	case []byte:
		return ldvalue.Parse(v)
	default:
		data, _ := json.Marshal(v)
		return ldvalue.Parse(data)
	}
}

// jsonOf interprets an actual input value as JSON; strings are parsed as JSON text, since
// test inputs are usually raw response bodies.
func jsonOf(value interface{}) ldvalue.Value {
	switch v := value.(type) {
	case nil:
		return ldvalue.Null()
	case ldvalue.Value:
		return v
	case json.RawMessage:
		return ldvalue.Parse(v)
	case []byte:
		return ldvalue.Parse(v)
	case string:
		return ldvalue.Parse([]byte(v))
	default:
		data, _ := json.Marshal(value)
		return ldvalue.Parse(data)
	}
}

func describeAsJSON(value interface{}) string {
	return jsonOf(value).JSONString()
}
