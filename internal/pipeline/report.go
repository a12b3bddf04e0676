package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Timing records start/end timestamps only
type Timing struct {
	StartedAt   time.Time
	CompletedAt time.Time
}

// NewTiming creates timing with current start time
func NewTiming() *Timing {
	return &Timing{StartedAt: time.Now()}
}

// Complete records completion time
func (t *Timing) Complete() {
	t.CompletedAt = time.Now()
}

// Duration returns execution duration
func (t *Timing) Duration() time.Duration {
	if t.CompletedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.CompletedAt.Sub(t.StartedAt)
}

// StageReport is the recorded result of one executed stage.
type StageReport struct {
	Stage    string        `json:"stage"`
	Status   string        `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report aggregates the stage outcomes of a single pipeline run.
type Report struct {
	Stages   []StageReport `json:"stages"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`

	timing *Timing
}

// NewReport starts an empty report with the run clock ticking.
func NewReport() *Report {
	return &Report{timing: NewTiming()}
}

// Record appends a stage result.
func (r *Report) Record(stage string, outcome Outcome, d time.Duration) {
	r.Stages = append(r.Stages, StageReport{
		Stage:    stage,
		Status:   outcome.Status.String(),
		Detail:   outcome.Detail,
		Duration: d,
	})
}

// Complete stops the run clock.
func (r *Report) Complete() {
	r.timing.Complete()
	r.Duration = r.timing.Duration()
}

// WriteTable renders the per-stage summary as a table.
func (r *Report) WriteTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Stage", "Status", "Duration", "Detail")

	for _, s := range r.Stages {
		table.Append(s.Stage, s.Status, formatDuration(s.Duration), s.Detail)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render summary table: %w", err)
	}
	fmt.Fprintf(w, "Total: %s\n", formatDuration(r.Duration))
	return nil
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
