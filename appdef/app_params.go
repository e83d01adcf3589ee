package appdef

import "github.com/Kestrun/example-test-harness/framework/harness"

const (
	CapabilityRouting         = "routing"
	CapabilitySSE             = "sse"
	CapabilitySSEResume       = "sse-resume"
	CapabilityOpenAPI         = "openapi"
	CapabilityMultipartForms  = "multipart-forms"
	CapabilityBasicAuth       = "basic-auth"
	CapabilityAPIKeyAuth      = "api-key-auth"
	CapabilityBearerAuth      = "bearer-auth"
	CapabilityHealth          = "health"
	CapabilityHealthProbes    = "health-probes"
	CapabilityStatusCodePages = "status-code-pages"
	CapabilityProblemDetails  = "problem-details"
	CapabilityLogWebhook      = "log-webhook"
	CapabilityStopCommand     = "stop-command"
)

// AllCapabilities lists every capability name the harness knows about, so that a
// declared name that matches nothing can be flagged as a likely typo.
var AllCapabilities = []string{ //nolint:gochecknoglobals
	CapabilityRouting,
	CapabilitySSE,
	CapabilitySSEResume,
	CapabilityOpenAPI,
	CapabilityMultipartForms,
	CapabilityBasicAuth,
	CapabilityAPIKeyAuth,
	CapabilityBearerAuth,
	CapabilityHealth,
	CapabilityHealthProbes,
	CapabilityStatusCodePages,
	CapabilityProblemDetails,
	CapabilityLogWebhook,
	CapabilityStopCommand,
}

// StatusRep is the JSON document an example app returns from its status resource.
type StatusRep struct {
	harness.AppInfoBase
	Version string `json:"version,omitempty"`
}

// Environment variables the harness sets when it launches an example app itself.
// KESTRUN_TEST_RUN_ID and PORT are always set by the process launcher; these are the
// optional ones that individual suites rely on.
const (
	EnvLogWebhookURL = "KESTRUN_LOG_WEBHOOK_URL"
)
