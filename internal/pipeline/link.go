package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/logging"
)

// LinkStage publishes the compilation database at the project root so
// clangd picks it up. This is developer-tooling convenience only: nothing
// here may abort the pipeline.
type LinkStage struct {
	Log *logging.Logger
}

func (s *LinkStage) Name() string { return "link" }

func (s *LinkStage) Run(_ context.Context, bc *config.Context) Outcome {
	src := bc.CompileDBSource()
	if _, err := os.Stat(src); err != nil {
		return Skippedf("no compilation database in %s", bc.BuildDir)
	}

	target := bc.CompileDBTarget()

	// A stale file or dangling symlink blocks both symlink and copy.
	if _, err := os.Lstat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return Warningf("could not replace %s: %v", target, err)
		}
	}

	if err := os.Symlink(src, target); err != nil {
		// Symlinks need elevated rights on some platforms; fall back to
		// a plain copy.
		s.Log.Debug("symlink failed, copying instead", map[string]interface{}{"error": err.Error()})
		if err := copyFile(src, target); err != nil {
			return Warningf("could not link %s: %v", config.CompileDBName, err)
		}
		return Successf("copied %s to project root", config.CompileDBName)
	}

	return Successf("linked %s to project root", config.CompileDBName)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}
	return out.Close()
}
