package exampletests

import (
	"encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/framework/ktest"
)

func doStatusInfoTests(t *ktest.T) {
	info := requireContext(t).harness.AppInfo()
	if len(info.FullData) == 0 {
		t.SkipWithReason("app does not provide status metadata")
	}

	t.Run("status document is well formed", func(t *ktest.T) {
		var rep appdef.StatusRep
		require.NoError(t, json.Unmarshal(info.FullData, &rep), "status document did not parse")
		assert.NotEmpty(t, rep.Name, "status document has no name")
		assert.Equal(t, info.Name, rep.Name)
	})

	t.Run("declared capabilities are recognized", func(t *ktest.T) {
		// An unrecognized name is usually a typo in the app; its tests would silently
		// never run.
		for _, c := range info.Capabilities {
			assert.Contains(t, appdef.AllCapabilities, c, "app declares unknown capability %q", c)
		}
	})
}
