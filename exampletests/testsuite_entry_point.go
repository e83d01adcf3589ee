package exampletests

import (
	"fmt"
	"os"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework"
	"github.com/Kestrun/example-test-harness/framework/harness"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	"github.com/Kestrun/example-test-harness/mocksink"
)

// RunExampleTestSuite runs every conformance suite against the app that the harness is
// attached to. Suites for optional app features are skipped, not failed, when the app
// does not advertise the corresponding capability.
func RunExampleTestSuite(
	testHarness *harness.TestHarness,
	logSink *mocksink.LogSink,
	filter ktest.Filter,
	testLogger ktest.TestLogger,
) ktest.Results {
	capabilities := testHarness.AppInfo().Capabilities
	if len(capabilities) == 0 {
		// Apps that predate the status metadata contract get the baseline suite only.
		capabilities = framework.Capabilities{appdef.CapabilityRouting}
	}

	fmt.Printf("Running conformance test suite against %q\n\n", testHarness.AppInfo().Name)
	if sdf, ok := filter.(ktest.SelfDescribingFilter); ok {
		sdf.Describe(os.Stdout, capabilities, importantCapabilities())
	}

	config := ktest.TestConfiguration{
		Filter:       filter,
		Capabilities: capabilities,
		TestLogger:   testLogger,
		Context: ExampleTestContext{
			harness: testHarness,
			logSink: logSink,
		},
	}

	return ktest.Run(config, func(t *ktest.T) {
		t.Run("status metadata", doStatusInfoTests)
		t.Run("routing", doRoutingTests)
		t.Run("forms", doFormTests)
		t.Run("server-sent events", doSSETests)
		t.Run("authentication", doAuthTests)
		t.Run("openapi", doOpenAPITests)
		t.Run("health", doHealthTests)
		t.Run("status code pages", doStatusPageTests)
		t.Run("exception handling", doErrorHandlingTests)
		t.Run("request logging", doLoggingTests)
	})
}

func importantCapabilities() framework.Capabilities {
	// The routing capability is not listed here because a missing status document
	// implies it; every example app has some routes.
	return framework.Capabilities{
		appdef.CapabilitySSE,
		appdef.CapabilityOpenAPI,
		appdef.CapabilityMultipartForms,
		appdef.CapabilityBasicAuth,
		appdef.CapabilityHealth,
		appdef.CapabilityStatusCodePages,
		appdef.CapabilityLogWebhook,
	}
}
