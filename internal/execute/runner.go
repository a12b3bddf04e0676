// Package execute is the single chokepoint for spawning external tools.
// Every child process the orchestrator supervises (cmake, ctest, stress
// executables, the built application) goes through a Runner so stages can
// be tested against a fake without touching the real toolchain.
package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// Spec describes a single external invocation. Env entries are appended to
// the orchestrator's own environment for the child only; the ambient
// environment is never mutated.
type Spec struct {
	Program string
	Args    []string
	Dir     string
	Env     map[string]string
}

// Runner executes an external process and blocks until it terminates.
type Runner interface {
	// Run returns the child's exit code. A non-zero exit is not an error;
	// err is reserved for failures to start or supervise the process.
	Run(ctx context.Context, spec Spec) (int, error)
}

// ProcessRunner is the real Runner. Child stdout/stderr are forwarded to
// the configured writers so tool output reaches the terminal unmodified.
type ProcessRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a ProcessRunner forwarding to the orchestrator's own
// stdout and stderr.
func NewRunner() *ProcessRunner {
	return &ProcessRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Runner.
func (r *ProcessRunner) Run(ctx context.Context, spec Spec) (int, error) {
	cmd := exec.CommandContext(ctx, spec.Program, spec.Args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), flattenEnv(spec.Env)...)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("failed to run %s: %w", spec.Program, err)
}

// flattenEnv renders the override map as KEY=VALUE pairs in a stable order.
func flattenEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}
	return pairs
}
