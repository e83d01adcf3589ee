package main

import (
	"bufio"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Kestrun/example-test-harness/appdef"
	"github.com/Kestrun/example-test-harness/exampletests"
	"github.com/Kestrun/example-test-harness/framework"
	"github.com/Kestrun/example-test-harness/framework/harness"
	"github.com/Kestrun/example-test-harness/framework/ktest"
	"github.com/Kestrun/example-test-harness/mocksink"
)

const defaultPort = 8111
const defaultAppPort = 5000
const statusQueryTimeout = time.Second * 10
const appShutdownTimeout = time.Second * 10

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("example-test-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*ktest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	testHarness, err := harness.NewTestHarness(
		params.appURL,
		params.host,
		params.port,
		mainDebugLogger,
	)
	if err != nil {
		return nil, err
	}

	// The log sink endpoint has to exist before the app is launched, because the app
	// is told where to post its log events through an environment variable.
	logSink := mocksink.NewLogSink(mainDebugLogger)
	sinkEndpoint := testHarness.NewMockEndpoint(logSink, mainDebugLogger,
		harness.MockEndpointDescription("log sink"))
	defer sinkEndpoint.Close()

	if len(params.appCommand) > 0 {
		appProcess, err := harness.StartAppProcess(harness.AppProcessConfig{
			Command: params.appCommand,
			WorkDir: params.workDir,
			Port:    params.appPort,
			Env: map[string]string{
				appdef.EnvLogWebhookURL: sinkEndpoint.BaseURL(),
			},
		}, mainDebugLogger)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := appProcess.Stop(appShutdownTimeout); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to stop example app: %s\n", err)
			}
		}()
	} else {
		// We are attaching to an app that was started some other way, so it never saw
		// the log sink URL and its log events cannot reach us.
		logSink = nil
	}

	if err := testHarness.AwaitAppReady(statusQueryTimeout, os.Stdout); err != nil {
		return nil, err
	}

	var testLogger ktest.TestLogger
	consoleLogger := ktest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		testLogger = &ktest.MultiTestLogger{Loggers: []ktest.TestLogger{
			consoleLogger,
			ktest.NewJUnitTestLogger(params.jUnitFile, testHarness.AppInfo(), params.filters),
		}}
	}

	results := exampletests.RunExampleTestSuite(testHarness, logSink, params.filters, testLogger)

	fmt.Println()
	logErr := testLogger.EndLog(results)

	if params.stopServiceAtEnd {
		fmt.Println("Stopping example app")
		if err := testHarness.StopService(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop example app: %s\n", err)
		}
	}

	if logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	if params.recordFailures != "" {
		f, err := os.Create(params.recordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %v", err)
		}
		for _, test := range results.Failures {
			fmt.Fprintln(f, test.TestID)
		}
		_ = f.Close()
	}

	return &results, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}
