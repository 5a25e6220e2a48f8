// Package testutil provides test utilities and helpers for relnotes tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// HelperProcessConfig configures the behavior of TestHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// Delay is how long to sleep before writing any output.
	Delay time.Duration `json:"delay"`
}

// HelperProcessEnvVars contains the environment variable names used by TestHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
	// EnvHelperProcessArgs contains the original command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// TestHelperProcess is a function to be called from a test function
// to implement the helper process pattern. When invoked with GO_WANT_HELPER_PROCESS=1,
// it behaves as a mock subprocess and exits without returning.
//
// Usage in test file:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.TestHelperProcess(t)
//	}
//
// If GO_WANT_HELPER_PROCESS is not set it returns immediately, allowing
// normal test execution.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := parseHelperConfig()
	if config.Delay > 0 {
		time.Sleep(config.Delay)
	}
	if config.Stdout != "" {
		fmt.Fprint(os.Stdout, config.Stdout)
	}
	if config.Stderr != "" {
		fmt.Fprint(os.Stderr, config.Stderr)
	}
	os.Exit(config.ExitCode)
}

// parseHelperConfig parses HelperProcessConfig from environment variable.
func parseHelperConfig() HelperProcessConfig {
	config := HelperProcessConfig{}
	configJSON := os.Getenv(EnvHelperProcessConfig)
	if configJSON != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(configJSON), &config)
	}
	return config
}

// ConfigureTestCommand creates an exec.Cmd that invokes the test binary
// as a helper process instead of the real command.
//
// testName must name a test function that calls TestHelperProcess. args are
// the arguments the real command would have received; they are recorded in
// GO_HELPER_PROCESS_ARGS and can be read back with HelperArgs.
func ConfigureTestCommand(t *testing.T, testName string, config HelperProcessConfig, args ...string) *exec.Cmd {
	t.Helper()
	return ConfigureTestCommandContext(context.Background(), t, testName, config, args...)
}

// ConfigureTestCommandContext is ConfigureTestCommand bound to ctx.
func ConfigureTestCommandContext(ctx context.Context, t *testing.T, testName string, config HelperProcessConfig, args ...string) *exec.Cmd {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}

	cmd := exec.CommandContext(ctx, testBinary, "-test.run=^"+testName+"$")
	cmd.Env = buildHelperEnv(t, config, args)
	return cmd
}

// buildHelperEnv constructs the environment variables for helper process.
func buildHelperEnv(t *testing.T, config HelperProcessConfig, args []string) []string {
	t.Helper()

	env := os.Environ()
	env = append(env, EnvWantHelperProcess+"=1")

	if configJSON, err := json.Marshal(config); err == nil {
		env = append(env, EnvHelperProcessConfig+"="+string(configJSON))
	}
	if argsJSON, err := json.Marshal(args); err == nil {
		env = append(env, EnvHelperProcessArgs+"="+string(argsJSON))
	}

	return env
}

// HelperArgs returns the original arguments recorded in cmd's environment.
func HelperArgs(cmd *exec.Cmd) []string {
	prefix := EnvHelperProcessArgs + "="
	for _, e := range cmd.Env {
		if !strings.HasPrefix(e, prefix) {
			continue
		}
		var args []string
		if err := json.Unmarshal([]byte(strings.TrimPrefix(e, prefix)), &args); err == nil {
			return args
		}
	}
	return nil
}
