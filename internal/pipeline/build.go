package pipeline

import (
	"context"
	"strconv"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
	"github.com/psantana5/slabbuild/internal/toolchain"
)

// BuildStage drives the cmake build against the configured tree. A non-zero
// builder status aborts the pipeline with that status, same as configure.
type BuildStage struct {
	Runner execute.Runner
	Log    *logging.Logger
}

func (s *BuildStage) Name() string { return "build" }

func (s *BuildStage) Run(ctx context.Context, bc *config.Context) Outcome {
	banner("Building (%s)", bc.Options.Profile)

	jobs := bc.Options.Jobs
	if jobs <= 0 {
		jobs = toolchain.ParallelJobs()
	}
	s.Log.Debug("build parallelism", map[string]interface{}{"jobs": jobs})

	code, err := s.Runner.Run(ctx, execute.Spec{
		Program: "cmake",
		Args:    []string{"--build", bc.BuildDir, "--parallel", strconv.Itoa(jobs)},
	})
	if err != nil {
		return Fatalf(1, "cmake build failed: %v", err)
	}
	if code != 0 {
		return Fatalf(code, "cmake build exited with status %d", code)
	}

	return Success()
}
