package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Kestrun/example-test-harness/framework/ktest"
)

type commandParams struct {
	appURL           string
	appCommand       []string
	workDir          string
	appPort          int
	port             int
	host             string
	filters          ktest.RegexFilters
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
	jUnitFile        string
	skipFile         string
	recordFailures   string
	configFile       string
}

func (c *commandParams) Read(args []string) bool {
	// The config file path has to be known before the other flags are registered,
	// because the file supplies their default values.
	configFile := scanConfigFlag(args[1:])
	defaults, err := loadFileConfig(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	var commandString string
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", configFile, "path to an optional YAML config file")
	fs.StringVar(&c.appURL, "url", defaults.URL, "base URL of the example app under test")
	fs.StringVar(&commandString, "command", strings.Join(defaults.Command, " "),
		"command to launch the example app (if omitted, the harness attaches to an already running app)")
	fs.StringVar(&c.workDir, "workdir", defaults.WorkDir, "working directory for the launched app")
	fs.IntVar(&c.appPort, "app-port", orDefaultInt(defaults.AppPort, defaultAppPort),
		"port that the launched app will listen on")
	fs.StringVar(&c.host, "host", orDefaultString(defaults.Host, "localhost"),
		"external hostname of the test harness")
	fs.IntVar(&c.port, "port", orDefaultInt(defaults.Port, defaultPort),
		"port that the test harness will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skipfile", defaults.SkipFile,
		"file containing names of tests to skip, one per line")
	fs.BoolVar(&c.stopServiceAtEnd, "stop-service-at-end", defaults.StopServiceAtEnd,
		"tell the example app to exit after the test run")
	fs.BoolVar(&c.debug, "debug", defaults.Debug, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", defaults.DebugAll, "enable debug logging for all tests")
	fs.StringVar(&c.jUnitFile, "junit", defaults.JUnitFile, "write JUnit XML output to the specified path")
	fs.StringVar(&c.recordFailures, "record-failures", "",
		"write names of failed tests to the specified path")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if commandString != "" {
		c.appCommand = strings.Fields(commandString)
	}
	if c.appURL == "" && len(c.appCommand) == 0 {
		fmt.Fprintln(os.Stderr, "either -url or -command is required")
		fs.Usage()
		return false
	}
	if c.appURL == "" {
		c.appURL = fmt.Sprintf("http://localhost:%d", c.appPort)
	}
	return true
}

// scanConfigFlag finds the value of -config without doing a full flag parse.
func scanConfigFlag(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		if name != "-config" && name != "--config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(configEnvPrefix + "CONFIG")
}

func orDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func orDefaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
