package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/Kestrun/example-test-harness/framework"
)

const portLockRetryDelay = time.Millisecond * 250

// AppProcessConfig contains parameters for launching an example app as a child process.
type AppProcessConfig struct {
	// Command is the command line to run, such as ["pwsh", "-File", "8.1-Multiple-Routes.ps1"].
	Command []string

	// WorkDir is the working directory for the process, or "" for the current directory.
	WorkDir string

	// Port is the port the app will listen on. The harness takes a lockfile on this port
	// so that two harness runs do not race to start apps on the same port.
	Port int

	// Env is additional environment variables to set for the process, beyond the harness's
	// own variables and the parent environment.
	Env map[string]string

	// FilterOutput is an optional list of patterns for process output lines that should not
	// be echoed to the log, such as startup banners.
	FilterOutput []*regexp.Regexp
}

// AppProcess manages an example app that the harness has launched as a child process.
//
// The process's stdout and stderr are piped line by line into the harness log. Each
// process is tagged with a unique run ID, passed to the app in an environment variable,
// so that log output from overlapping runs can be told apart.
type AppProcess struct {
	cmd      *exec.Cmd
	runID    string
	portLock *flock.Flock
	waitCh   chan error
	logger   framework.Logger
	stopping sync.Once
}

// StartAppProcess launches the example app and returns once the process has started.
// It does not wait for the app to be ready; NewTestHarness does that with the status query.
func StartAppProcess(config AppProcessConfig, logger framework.Logger) (*AppProcess, error) {
	if len(config.Command) == 0 {
		return nil, fmt.Errorf("no command was specified for launching the app")
	}
	if logger == nil {
		logger = framework.NullLogger()
	}

	portLock := flock.New(portLockFilePath(config.Port))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	locked, err := portLock.TryLockContext(ctx, portLockRetryDelay)
	if err != nil || !locked {
		return nil, fmt.Errorf("could not acquire lock for port %d (is another harness run using it?): %w",
			config.Port, err)
	}

	runID := uuid.NewString()

	cmd := exec.Command(config.Command[0], config.Command[1:]...) //nolint:gosec
	cmd.Dir = config.WorkDir
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("KESTRUN_TEST_RUN_ID=%s", runID))
	cmd.Env = append(cmd.Env, fmt.Sprintf("PORT=%d", config.Port))
	for k, v := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	output := newFilteredWriter(newLineLogger(logger, "[app] "), config.FilterOutput)
	cmd.Stdout = output
	cmd.Stderr = output

	logger.Printf("Launching example app: %v (run ID %s)", config.Command, runID)
	if err := cmd.Start(); err != nil {
		_ = portLock.Unlock()
		return nil, fmt.Errorf("could not start %q: %w", config.Command[0], err)
	}

	p := &AppProcess{
		cmd:      cmd,
		runID:    runID,
		portLock: portLock,
		waitCh:   make(chan error, 1),
		logger:   logger,
	}
	go func() {
		p.waitCh <- cmd.Wait()
	}()
	return p, nil
}

// RunID returns the unique identifier assigned to this process.
func (p *AppProcess) RunID() string {
	return p.runID
}

// AwaitExit blocks until the process exits on its own, or the timeout elapses.
func (p *AppProcess) AwaitExit(timeout time.Duration) error {
	select {
	case err := <-p.waitCh:
		p.release()
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app process did not exit within %s", timeout)
	}
}

// Stop terminates the process if it is still running. It first asks politely with an
// interrupt signal, then kills the process if it has not exited within the timeout.
func (p *AppProcess) Stop(timeout time.Duration) error {
	var stopErr error
	p.stopping.Do(func() {
		defer p.release()
		if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
			// the process may have already exited, or the platform may not support the signal
			p.logger.Printf("Could not send interrupt to app process: %s", err)
		}
		select {
		case <-p.waitCh:
			return
		case <-time.After(timeout):
			p.logger.Printf("App process did not exit after %s, killing it", timeout)
		}
		if err := p.cmd.Process.Kill(); err != nil {
			stopErr = fmt.Errorf("could not kill app process: %w", err)
			return
		}
		<-p.waitCh
	})
	return stopErr
}

func (p *AppProcess) release() {
	if p.portLock != nil {
		_ = p.portLock.Unlock()
	}
}

func portLockFilePath(port int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("example-test-harness-port-%d.lock", port))
}

// lineLogger is an io.Writer that forwards each complete line of output to a Logger.
type lineLogger struct {
	logger  framework.Logger
	prefix  string
	partial bytes.Buffer
	lock    sync.Mutex
}

func newLineLogger(logger framework.Logger, prefix string) *lineLogger {
	return &lineLogger{logger: logger, prefix: prefix}
}

func (l *lineLogger) Write(data []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.partial.Write(data)
	for {
		line, rest, found := bytes.Cut(l.partial.Bytes(), []byte("\n"))
		if !found {
			break
		}
		l.logger.Printf("%s%s", l.prefix, string(bytes.TrimSuffix(line, []byte("\r"))))
		remainder := append([]byte(nil), rest...)
		l.partial.Reset()
		l.partial.Write(remainder)
	}
	return len(data), nil
}
