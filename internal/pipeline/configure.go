package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
	"github.com/psantana5/slabbuild/internal/toolchain"
)

// cmake cache options the project's CMakeLists understands.
const (
	cacheBuildType       = "CMAKE_BUILD_TYPE"
	cacheExportCompileDB = "CMAKE_EXPORT_COMPILE_COMMANDS"
	cacheBuildTests      = "SLABALLOCATOR_BUILD_TESTS"
	cacheBuildStress     = "SLABALLOCATOR_BUILD_STRESS_TESTS"
	cacheStaticLinking   = "SLABALLOCATOR_STATIC_LINKING"
)

// ConfigureStage creates the build tree and runs the cmake configure step.
// A non-zero cmake status aborts the pipeline with that status.
type ConfigureStage struct {
	Runner execute.Runner
	Probe  *toolchain.GeneratorProbe
	Log    *logging.Logger
}

func (s *ConfigureStage) Name() string { return "configure" }

func (s *ConfigureStage) Run(ctx context.Context, bc *config.Context) Outcome {
	banner("Configuring (%s)", bc.Options.Profile)

	if err := os.MkdirAll(bc.BuildDir, 0o755); err != nil {
		return Fatalf(1, "failed to create %s: %v", bc.BuildDir, err)
	}

	args := []string{"-S", bc.ProjectRoot, "-B", bc.BuildDir}

	if gen, ok := s.Probe.Preferred(); ok {
		s.Log.Debug("using generator " + gen)
		args = append(args, "-G", gen)
	}

	args = append(args,
		cacheDef(cacheBuildType, string(bc.Options.Profile)),
		cacheDef(cacheExportCompileDB, "ON"),
		cacheDef(cacheBuildTests, onOff(bc.TestsEnabled)),
		cacheDef(cacheBuildStress, onOff(bc.Options.StressTest)),
		cacheDef(cacheStaticLinking, onOff(bc.Options.Static)),
	)
	args = append(args, manifestCacheDefs(bc.Manifest)...)

	code, err := s.Runner.Run(ctx, execute.Spec{Program: "cmake", Args: args})
	if err != nil {
		return Fatalf(1, "cmake configure failed: %v", err)
	}
	if code != 0 {
		return Fatalf(code, "cmake configure exited with status %d", code)
	}

	return Success()
}

// manifestCacheDefs renders the manifest's extra cache vars in a stable
// order so repeated configures produce identical cmake invocations.
func manifestCacheDefs(man config.Manifest) []string {
	if len(man.CacheVars) == 0 {
		return nil
	}

	keys := make([]string, 0, len(man.CacheVars))
	for k := range man.CacheVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	defs := make([]string, 0, len(keys))
	for _, k := range keys {
		defs = append(defs, cacheDef(k, man.CacheVars[k]))
	}
	return defs
}

func cacheDef(name, value string) string {
	return fmt.Sprintf("-D%s=%s", name, value)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
