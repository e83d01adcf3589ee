package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandParamsReadRequiresURLOrCommand(t *testing.T) {
	var p commandParams
	assert.False(t, p.Read([]string{"harness"}))
}

func TestCommandParamsReadWithURL(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"harness", "-url", "http://localhost:5000", "-debug"}))
	assert.Equal(t, "http://localhost:5000", p.appURL)
	assert.True(t, p.debug)
	assert.False(t, p.debugAll)
	assert.Nil(t, p.appCommand)
}

func TestCommandParamsReadWithCommand(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"harness", "-command", "pwsh ./server.ps1", "-app-port", "5099"}))
	assert.Equal(t, []string{"pwsh", "./server.ps1"}, p.appCommand)
	assert.Equal(t, 5099, p.appPort)
	assert.Equal(t, "http://localhost:5099", p.appURL)
}

func TestCommandParamsReadFilters(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"harness", "-url", "http://localhost:5000",
		"-run", "routing", "-skip", "forms"}))
	assert.True(t, p.filters.MustMatch.IsDefined())
	assert.True(t, p.filters.MustNotMatch.IsDefined())
}

func TestScanConfigFlag(t *testing.T) {
	assert.Equal(t, "", scanConfigFlag([]string{"-url", "x"}))
	assert.Equal(t, "a.yml", scanConfigFlag([]string{"-config", "a.yml", "-url", "x"}))
	assert.Equal(t, "b.yml", scanConfigFlag([]string{"-url", "x", "--config=b.yml"}))
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: http://localhost:5055
debug: true
command:
  - pwsh
  - ./server.ps1
`), 0600))

	c, err := loadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5055", c.URL)
	assert.True(t, c.Debug)
	assert.Equal(t, []string{"pwsh", "./server.ps1"}, c.Command)
}

func TestLoadFileConfigEnvOverride(t *testing.T) {
	t.Setenv("KESTRUN_HARNESS_JUNIT", "report.xml")
	t.Setenv("KESTRUN_HARNESS_DEBUGALL", "true")

	c, err := loadFileConfig("")
	require.NoError(t, err)
	assert.Equal(t, "report.xml", c.JUnitFile)
	assert.True(t, c.DebugAll)
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	_, err := loadFileConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
