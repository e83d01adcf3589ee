package matchers

import (
	"fmt"
	"reflect"
	"strings"
)

// Not negates the result of another Matcher.
//
//	matchers.Not(Equal(3)).Assert(t, 4)
//	// failure message will describe expectation as "not (equal to 3)"
func Not(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			return !matcher.test(value)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			return fmt.Sprintf("not (%s)", matcher.describeFailure(value, matcher.describeValue))
		},
	).WithValueDescription(matcher.describeValue)
}

// AllOf requires that the input value passes all of the specified Matchers. If it fails,
// the failure message describes all of the Matchers that failed.
func AllOf(matchers ...Matcher) Matcher {
	var describeValueFn func(interface{}) string
	if len(matchers) != 0 {
		describeValueFn = matchers[0].describeValue
	}
	return New(
		func(value interface{}) bool {
			for _, m := range matchers {
				if !m.test(value) {
					return false
				}
			}
			return true
		},
		func(value interface{}, desc DescribeValueFunc) string {
			var fails []Matcher
			for _, m := range matchers {
				if !m.test(value) {
					fails = append(fails, m)
				}
			}
			return describeMatchersList(fails, value, " and ")
		},
	).WithValueDescription(describeValueFn)
}

// AnyOf requires that the input value passes at least one of the specified Matchers. If it
// fails, the failure message describes all of the Matchers that failed.
func AnyOf(matchers ...Matcher) Matcher {
	var describeValueFn func(interface{}) string
	if len(matchers) != 0 {
		describeValueFn = matchers[0].describeValue
	}
	return New(
		func(value interface{}) bool {
			for _, m := range matchers {
				if m.test(value) {
					return true
				}
			}
			return false
		},
		func(value interface{}, desc DescribeValueFunc) string {
			var fails []Matcher
			for _, m := range matchers {
				if !m.test(value) {
					fails = append(fails, m)
				}
			}
			return describeMatchersList(fails, value, " or ")
		},
	).WithValueDescription(describeValueFn)
}

// ItemsInAnyOrder is a matcher for a slice value. It tests that the slice contains the same
// number of elements as the number of parameters, and that each parameter is a matcher that
// matches one item in the slice.
//
//	s := []int{6,2}
//	matchers.ItemsInAnyOrder(matchers.Equal(2), matchers.Equal(6)).Test(s) // pass
func ItemsInAnyOrder(matchers ...Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return false
			}
			if v.Len() != len(matchers) {
				return false
			}
			foundCount := 0
			for _, m := range matchers {
				for j := 0; j < v.Len(); j++ {
					if m.test(v.Index(j).Interface()) {
						foundCount++
						break
					}
				}
			}
			return foundCount == len(matchers)
		},
		func(value interface{}, desc DescribeValueFunc) string {
			v := reflect.ValueOf(value)
			if v.Type().Kind() != reflect.Slice {
				return "a slice"
			}
			if v.Len() != len(matchers) {
				return fmt.Sprintf("should have %d item(s) (had %d)", len(matchers), v.Len())
			}
			return "contains in any order: " + describeMatchersList(matchers, value, ", ")
		},
	)
}

func describeMatchersList(matchers []Matcher, value interface{}, separator string) string {
	if len(matchers) == 1 {
		return matchers[0].describeFailure(value, matchers[0].describeValue)
	}
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		parts = append(parts, "("+m.describeFailure(value, m.describeValue)+")")
	}
	return strings.Join(parts, separator)
}
