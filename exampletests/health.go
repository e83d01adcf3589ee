package exampletests

import (
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/helpers"
	"github.com/Kestrun/example-test-harness/framework/ktest"
)

const healthPath = "/healthz"

// Apps with the health-probes capability expose a toggleable probe so the harness can
// observe the degraded state. The query parameter selects the state to simulate.
const healthSimulatePath = "/healthz/simulate"

// Apps may evaluate probes on a background schedule, so a simulated state change is not
// necessarily visible on the next request.
const healthTransitionTimeout = time.Second * 5
const healthPollInterval = time.Millisecond * 100

func doHealthTests(t *ktest.T) {
	t.RequireCapability(appdef.CapabilityHealth)

	client := NewAppClient(requireContext(t).harness)

	t.Run("healthy app reports healthy status", func(t *ktest.T) {
		resp := client.Get(t, healthPath)
		requireStatus(t, resp, 200)
		assert.Equal(t, "application/json", resp.ContentType())

		doc := ldvalue.Parse(resp.Body)
		require.Equal(t, ldvalue.ObjectType, doc.Type(), "health document was not a JSON object")
		assert.NotEmpty(t, doc.GetByKey("status").StringValue(), "health document has no status")
	})

	t.Run("health document lists probes", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityHealthProbes)

		resp := client.Get(t, healthPath)
		requireStatus(t, resp, 200)

		doc := ldvalue.Parse(resp.Body)
		probes := doc.GetByKey("probes")
		require.Equal(t, ldvalue.ArrayType, probes.Type(), "health document has no probes array")
		require.NotZero(t, probes.Count(), "probes array is empty")
		for i := 0; i < probes.Count(); i++ {
			probe := probes.GetByIndex(i)
			assert.NotEmpty(t, probe.GetByKey("name").StringValue(), "probe %d has no name", i)
			assert.NotEmpty(t, probe.GetByKey("status").StringValue(), "probe %d has no status", i)
		}
	})

	t.Run("failing probe degrades the status", func(t *ktest.T) {
		t.RequireCapability(appdef.CapabilityHealthProbes)

		resp := client.Do(t, RequestParams{Method: "POST", Path: healthSimulatePath, Query: "state=unhealthy"})
		requireStatus(t, resp, 200)
		t.Defer(func() {
			_ = client.Do(t, RequestParams{Method: "POST", Path: healthSimulatePath, Query: "state=healthy"})
		})

		helpers.RequireEventually(t, func() bool {
			return client.Get(t, healthPath).Status == 503
		}, healthTransitionTimeout, healthPollInterval,
			"health status never became degraded after simulating an unhealthy probe")

		degraded := client.Get(t, healthPath)
		requireStatus(t, degraded, 503)

		doc := ldvalue.Parse(degraded.Body)
		assert.NotEmpty(t, doc.GetByKey("status").StringValue())
	})
}
