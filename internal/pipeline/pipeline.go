// Package pipeline sequences the build stages. The controller walks an
// explicit ordered stage list, short-circuits on a fatal outcome, and keeps
// going on warnings so a developer can still run the application after a
// test regression.
package pipeline

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/psantana5/slabbuild/internal/config"
	"github.com/psantana5/slabbuild/internal/execute"
	"github.com/psantana5/slabbuild/internal/logging"
	"github.com/psantana5/slabbuild/internal/toolchain"
)

// Status classifies a stage outcome.
type Status int

const (
	// StatusSuccess means the stage did its work.
	StatusSuccess Status = iota
	// StatusSkipped means the stage had nothing to do for this invocation.
	StatusSkipped
	// StatusWarning means something went wrong but the pipeline continues.
	StatusWarning
	// StatusFatal aborts the pipeline and carries the process exit code.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusWarning:
		return "warning"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result a stage hands back to the controller.
type Outcome struct {
	Status Status
	Detail string
	// ExitCode is the process exit status to propagate. Only meaningful
	// for StatusFatal.
	ExitCode int
}

// Success is the zero-detail successful outcome.
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Successf is a successful outcome with a human-readable detail.
func Successf(format string, a ...interface{}) Outcome {
	return Outcome{Status: StatusSuccess, Detail: fmt.Sprintf(format, a...)}
}

// Skippedf marks a stage that did not apply to this invocation.
func Skippedf(format string, a ...interface{}) Outcome {
	return Outcome{Status: StatusSkipped, Detail: fmt.Sprintf(format, a...)}
}

// Warningf marks a non-fatal problem; the pipeline continues.
func Warningf(format string, a ...interface{}) Outcome {
	return Outcome{Status: StatusWarning, Detail: fmt.Sprintf(format, a...)}
}

// Fatalf aborts the pipeline with the given process exit code.
func Fatalf(exitCode int, format string, a ...interface{}) Outcome {
	if exitCode == 0 {
		exitCode = 1
	}
	return Outcome{Status: StatusFatal, Detail: fmt.Sprintf(format, a...), ExitCode: exitCode}
}

// Stage is one ordered step of the build pipeline.
type Stage interface {
	Name() string
	Run(ctx context.Context, bc *config.Context) Outcome
}

// Pipeline is the ordered stage list plus the shared collaborators.
type Pipeline struct {
	stages []Stage
	log    *logging.Logger
}

// New assembles the stage list for the given invocation. Clean is an
// unconditional early exit, so a clean run contains nothing else; build-only
// stops the list after the artifact link.
func New(bc *config.Context, runner execute.Runner, log *logging.Logger) *Pipeline {
	if bc.Options.Clean {
		return &Pipeline{
			stages: []Stage{&CleanStage{Log: log}},
			log:    log,
		}
	}

	stages := []Stage{
		&ConfigureStage{Runner: runner, Probe: toolchain.NewGeneratorProbe(), Log: log},
		&BuildStage{Runner: runner, Log: log},
		&LinkStage{Log: log},
	}
	if !bc.Options.BuildOnly {
		stages = append(stages,
			&TestStage{Runner: runner, Log: log},
			&StressStage{Runner: runner, Log: log},
			&RunStage{Runner: runner, Log: log},
		)
	}

	return &Pipeline{stages: stages, log: log}
}

// NewWithStages builds a pipeline over an explicit stage list.
func NewWithStages(log *logging.Logger, stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, log: log}
}

// Run executes the stages in order and returns the aggregated report. The
// report's exit code is 0 unless a stage went fatal.
func (p *Pipeline) Run(ctx context.Context, bc *config.Context) *Report {
	report := NewReport()

	for _, stage := range p.stages {
		timing := NewTiming()
		outcome := stage.Run(ctx, bc)
		timing.Complete()

		report.Record(stage.Name(), outcome, timing.Duration())

		switch outcome.Status {
		case StatusWarning:
			p.log.Warn(fmt.Sprintf("%s: %s", stage.Name(), outcome.Detail))
		case StatusFatal:
			p.log.Error(fmt.Sprintf("%s: %s", stage.Name(), outcome.Detail))
			report.ExitCode = outcome.ExitCode
			report.Complete()
			return report
		}
	}

	report.Complete()
	return report
}

// banner prints the === Stage === separators the way the original tool did,
// bold cyan when stdout is a terminal.
func banner(format string, a ...interface{}) {
	color.New(color.FgCyan, color.Bold).Printf("=== "+format+" ===\n", a...)
}
