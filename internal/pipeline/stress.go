package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
)

// discoveredStressTest pairs a stress-test source with its expected
// executable. Instances live only for the duration of the stage.
type discoveredStressTest struct {
	Source     string
	Name       string
	Executable string
	Found      bool
	ExitCode   int
}

// StressStage discovers the stress-test sources and runs their executables
// one by one. Each test is fault-isolated: a failing or missing executable
// is reported and the stage moves on.
type StressStage struct {
	Runner execute.Runner
	Log    *logging.Logger
}

func (s *StressStage) Name() string { return "stress-test" }

func (s *StressStage) Run(ctx context.Context, bc *config.Context) Outcome {
	if !bc.Options.StressTest {
		return Skippedf("stress tests not requested")
	}

	banner("Running Stress Tests")

	tests, err := s.discover(bc)
	if err != nil {
		return Warningf("directory %s does not exist", bc.Manifest.StressDir)
	}
	if len(tests) == 0 {
		return Warningf("no %s files found in %s", bc.Manifest.StressExt, bc.Manifest.StressDir)
	}

	var failed, missing int
	for i := range tests {
		test := &tests[i]
		if !test.Found {
			missing++
			s.Log.Warn(fmt.Sprintf("executable for %s not found (build might have failed)", test.Name))
			continue
		}

		fmt.Printf("--- Running %s ---\n", test.Name)
		code, err := s.Runner.Run(ctx, execute.Spec{Program: test.Executable})
		if err != nil {
			failed++
			s.Log.Error(fmt.Sprintf("FAILED: %s (%v)", test.Name, err))
			continue
		}
		test.ExitCode = code
		if code != 0 {
			failed++
			s.Log.Error(fmt.Sprintf("FAILED: %s", test.Name))
		}
	}

	if failed > 0 || missing > 0 {
		return Warningf("%d of %d stress tests failed, %d missing", failed, len(tests), missing)
	}
	return Successf("%d stress tests passed", len(tests))
}

// discover lists the stress-test sources in lexicographic filename order
// and resolves each one's expected executable in the build tree.
func (s *StressStage) discover(bc *config.Context) ([]discoveredStressTest, error) {
	entries, err := os.ReadDir(bc.StressSourceDir())
	if err != nil {
		return nil, err
	}

	var tests []discoveredStressTest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), bc.Manifest.StressExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), bc.Manifest.StressExt)
		exe := filepath.Join(bc.BuildDir, name+config.ExecSuffix())

		test := discoveredStressTest{
			Source:     entry.Name(),
			Name:       name,
			Executable: exe,
		}
		if _, err := os.Stat(exe); err == nil {
			test.Found = true
		}
		tests = append(tests, test)
	}

	return tests, nil
}
