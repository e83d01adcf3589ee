package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const configEnvPrefix = "KESTRUN_HARNESS_"

// fileConfig holds settings that can come from a YAML config file or from
// KESTRUN_HARNESS_* environment variables. Command line flags override all of these.
type fileConfig struct {
	URL              string   `koanf:"url"`
	Command          []string `koanf:"command"`
	WorkDir          string   `koanf:"workdir"`
	AppPort          int      `koanf:"appport"`
	Host             string   `koanf:"host"`
	Port             int      `koanf:"port"`
	JUnitFile        string   `koanf:"junit"`
	SkipFile         string   `koanf:"skipfile"`
	Debug            bool     `koanf:"debug"`
	DebugAll         bool     `koanf:"debugall"`
	StopServiceAtEnd bool     `koanf:"stopserviceatend"`
}

// loadFileConfig reads the optional config file, then applies environment variable
// overrides. An empty path means only the environment is consulted.
func loadFileConfig(path string) (fileConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fileConfig{}, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(configEnvPrefix, ".", func(s string) string {
		// Convert KESTRUN_HARNESS_JUNIT to junit
		s = strings.TrimPrefix(s, configEnvPrefix)
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil); err != nil {
		return fileConfig{}, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var c fileConfig
	if err := k.Unmarshal("", &c); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return c, nil
}
