package matchers

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Equal is a matcher that tests whether the input value matches the expected value according
// to reflect.DeepEqual.
func Equal(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return reflect.DeepEqual(value, expectedValue)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("equal to %s", desc(expectedValue))
		},
	)
}

// StringContains is a matcher for a string value. It tests that the string contains
// the given substring.
func StringContains(substring string) Matcher {
	return New(
		func(value interface{}) bool {
			s, ok := value.(string)
			return ok && strings.Contains(s, substring)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("contains %q", substring)
		},
	).EnsureType("")
}

// StringHasPrefix is a matcher for a string value. It tests that the string starts with
// the given prefix.
func StringHasPrefix(prefix string) Matcher {
	return New(
		func(value interface{}) bool {
			s, ok := value.(string)
			return ok && strings.HasPrefix(s, prefix)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("starts with %q", prefix)
		},
	).EnsureType("")
}

// StringMatchesRegex is a matcher for a string value. It tests the string against a
// regular expression that must already be valid.
func StringMatchesRegex(pattern string) Matcher {
	rx := regexp.MustCompile(pattern)
	return New(
		func(value interface{}) bool {
			s, ok := value.(string)
			return ok && rx.MatchString(s)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("matches pattern %q", pattern)
		},
	).EnsureType("")
}

// Length is a matcher for a slice, map, or string. It tests that the value's length
// passes the given matcher.
func Length(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			length, ok := lengthOf(value)
			return ok && matcher.test(length)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			length, ok := lengthOf(value)
			if !ok {
				return "a value with a length"
			}
			return "length " + matcher.describeFailure(length, matcher.describeValue)
		},
	)
}

func lengthOf(value interface{}) (int, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return v.Len(), true
	default:
		return 0, false
	}
}
