package ktest

import (
	"testing"

	"github.com/Kestrun/example-test-harness/framework"

	"github.com/stretchr/testify/assert"
)

type filterFunc func(id TestID) bool

func (f filterFunc) Match(id TestID) bool { return f(id) }

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	myCapabilities := framework.Capabilities{"a", "b"}
	config := TestConfiguration{
		Context:      myContextValue,
		Capabilities: myCapabilities,
	}
	_ = Run(config, func(kt *T) {
		assert.Equal(t, myContextValue, kt.Context())
		assert.Equal(t, myCapabilities, kt.Capabilities())

		kt.Run("subtest", func(kt1 *T) {
			assert.Equal(t, myContextValue, kt1.Context())
			assert.Equal(t, myCapabilities, kt1.Capabilities())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(kt *T) {
		kt.Run("", func(kt *T) {
			executed1 = true
			kt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(kt *T) {
		kt.Run("", func(kt *T) {
			executed1 = true
			kt.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(kt *T) {
		kt.Run("parent", func(kt0 *T) {
			kt0.Run("subtest1", func(kt1 *T) {
				// this test passes
			})
			kt0.Run("subtest2", func(kt2 *T) {
				// this test passes
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 0)

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(kt *T) {
		kt.Run("parent", func(kt0 *T) {
			kt0.Run("subtest1", func(kt1 *T) {
				// this test passes
			})
			kt0.Run("subtest2", func(kt2 *T) {
				kt2.Errorf("failed because %s", "reasons")
				kt2.Errorf("and failed some more")
			})
			kt0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeNonCriticalFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(kt *T) {
		kt.Run("flaky", func(kt0 *T) {
			kt0.NonCritical("known issue")
			kt0.Errorf("did not work")
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Failures, 0)
	assert.Len(t, result.NonCriticalFailures, 1)
	assert.Equal(t, TestID{"flaky"}, result.NonCriticalFailures[0].TestID)
	assert.Equal(t, "known issue", result.NonCriticalFailures[0].Explanation)
	assert.True(t, result.NonCriticalFailures[0].NonCritical)
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(kt *T) {
		kt.Run("parent", func(kt0 *T) {
			kt0.Run("subtest1", func(kt1 *T) {
				kt1.Skip()
			})
			kt0.Run("subtest2", func(kt2 *T) {
				kt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Nil(t, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)
}

func TestTestScopeFilter(t *testing.T) {
	filter := filterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(kt *T) {
		kt.Run("a", func(kt0 *T) {
			kt0.Run("sub1a", func(kt1 *T) {})
			kt0.Run("sub2a", func(kt1 *T) {})
		})
		kt.Run("b", func(kt0 *T) {
			kt0.Run("sub1b", func(kt1 *T) {})
			kt0.Run("sub2b", func(kt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestTestScopeRequireCapability(t *testing.T) {
	result := Run(TestConfiguration{Capabilities: framework.Capabilities{"yes"}}, func(kt *T) {
		kt.Run("supported", func(kt0 *T) {
			kt0.RequireCapability("yes")
		})
		kt.Run("unsupported", func(kt0 *T) {
			kt0.RequireCapability("no")
			kt0.Errorf("should not get here")
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Equal(t, TestID{"supported"}, result.Tests[0].TestID)
}

func TestTestScopeRunsCleanupsInReverseOrder(t *testing.T) {
	var order []string
	_ = Run(TestConfiguration{}, func(kt *T) {
		kt.Run("has cleanups", func(kt0 *T) {
			kt0.Defer(func() { order = append(order, "first") })
			kt0.Defer(func() { order = append(order, "second") })
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
}
