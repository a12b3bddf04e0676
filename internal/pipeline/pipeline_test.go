package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
)

// fakeRunner records every spec and answers with a scripted result.
type fakeRunner struct {
	calls []execute.Spec
	runFn func(spec execute.Spec) (int, error)
}

func (f *fakeRunner) Run(_ context.Context, spec execute.Spec) (int, error) {
	f.calls = append(f.calls, spec)
	if f.runFn != nil {
		return f.runFn(spec)
	}
	return 0, nil
}

func testLogger() *logging.Logger {
	log := logging.NewLogger(logging.ERROR, false)
	log.SetOutput(io.Discard)
	return log
}

func testContext(t *testing.T, opts config.Options) *config.Context {
	t.Helper()
	if opts.Profile == "" {
		opts.Profile = config.ProfileDebug
	}
	return config.NewContext(t.TempDir(), opts, config.DefaultManifest())
}

// stubStage returns a fixed outcome and remembers whether it ran.
type stubStage struct {
	name    string
	outcome Outcome
	ran     bool
}

func (s *stubStage) Name() string { return s.name }

func (s *stubStage) Run(context.Context, *config.Context) Outcome {
	s.ran = true
	return s.outcome
}

func TestControllerStopsOnFatal(t *testing.T) {
	first := &stubStage{name: "first", outcome: Success()}
	boom := &stubStage{name: "boom", outcome: Fatalf(5, "exploded")}
	after := &stubStage{name: "after", outcome: Success()}

	p := NewWithStages(testLogger(), first, boom, after)
	report := p.Run(context.Background(), testContext(t, config.Options{}))

	assert.True(t, first.ran)
	assert.True(t, boom.ran)
	assert.False(t, after.ran)
	assert.Equal(t, 5, report.ExitCode)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, "fatal", report.Stages[1].Status)
}

func TestControllerContinuesOnWarning(t *testing.T) {
	warn := &stubStage{name: "warn", outcome: Warningf("Tests failed")}
	after := &stubStage{name: "after", outcome: Success()}

	p := NewWithStages(testLogger(), warn, after)
	report := p.Run(context.Background(), testContext(t, config.Options{}))

	assert.True(t, after.ran)
	assert.Equal(t, 0, report.ExitCode)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, "warning", report.Stages[0].Status)
	assert.Equal(t, "ok", report.Stages[1].Status)
}

func TestNewCleanPipelineRunsNothingElse(t *testing.T) {
	bc := testContext(t, config.Options{Clean: true, StressTest: true})

	p := New(bc, &fakeRunner{}, testLogger())
	report := p.Run(context.Background(), bc)

	require.Len(t, report.Stages, 1)
	assert.Equal(t, "clean", report.Stages[0].Stage)
	assert.Equal(t, 0, report.ExitCode)
}

func TestNewBuildOnlyOmitsTestAndRunStages(t *testing.T) {
	bc := testContext(t, config.Options{BuildOnly: true})

	p := New(bc, &fakeRunner{}, testLogger())

	var names []string
	for _, stage := range p.stages {
		names = append(names, stage.Name())
	}
	assert.Equal(t, []string{"configure", "build", "link"}, names)
}

func TestNewFullPipelineStageOrder(t *testing.T) {
	bc := testContext(t, config.Options{})

	p := New(bc, &fakeRunner{}, testLogger())

	var names []string
	for _, stage := range p.stages {
		names = append(names, stage.Name())
	}
	assert.Equal(t, []string{"configure", "build", "link", "test", "stress-test", "run"}, names)
}
