package pipeline

import (
	"context"
	"os"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/logging"
)

// CleanStage wipes all generated build state: the whole build root, not
// just the active profile's tree, plus the published compilation database.
// When clean is requested nothing else ever runs.
type CleanStage struct {
	Log *logging.Logger
}

func (s *CleanStage) Name() string { return "clean" }

func (s *CleanStage) Run(_ context.Context, bc *config.Context) Outcome {
	banner("Cleaning %s", bc.BuildRoot)

	if err := os.RemoveAll(bc.BuildRoot); err != nil {
		return Fatalf(1, "failed to remove %s: %v", bc.BuildRoot, err)
	}

	target := bc.CompileDBTarget()
	if _, err := os.Lstat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return Fatalf(1, "failed to remove %s: %v", target, err)
		}
	}

	return Successf("removed %s", bc.BuildRoot)
}
