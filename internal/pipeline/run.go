package pipeline

import (
	"context"
	"os"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
)

// RunStage executes the primary build artifact and propagates its exit
// status verbatim as the orchestrator's own. A missing executable maps to
// status 1.
type RunStage struct {
	Runner execute.Runner
	Log    *logging.Logger
}

func (s *RunStage) Name() string { return "run" }

func (s *RunStage) Run(ctx context.Context, bc *config.Context) Outcome {
	banner("Running Application")

	if _, err := os.Stat(bc.ExecutablePath); err != nil {
		return Fatalf(1, "executable not found at %s", bc.ExecutablePath)
	}

	code, err := s.Runner.Run(ctx, execute.Spec{Program: bc.ExecutablePath})
	if err != nil {
		return Fatalf(1, "failed to run %s: %v", bc.ExecutablePath, err)
	}
	if code != 0 {
		// Bit-exact passthrough of the application's own status.
		return Fatalf(code, "%s exited with status %d", bc.Manifest.Executable, code)
	}

	return Success()
}
