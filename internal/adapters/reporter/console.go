package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"weathercontract.app/internal/core/harness"
)

// ConsoleReporter prints a line per scenario as it finishes and a summary
// line once the run is over.
type ConsoleReporter struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewConsoleReporter creates a console reporter. When verbose is false only
// problem outcomes get a line of their own.
func NewConsoleReporter(out io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, verbose: verbose}
}

// OnResult prints the scenario line
func (r *ConsoleReporter) OnResult(_ context.Context, _ string, res harness.Result) {
	if !r.verbose && !res.Outcome.IsProblem() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, resultLine(res))
}

// Write prints the summary line of a finished run
func (r *ConsoleReporter) Write(report *harness.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.out, SummaryLine(report))
	return err
}

func resultLine(res harness.Result) string {
	line := fmt.Sprintf("%-14s %s", strings.ToUpper(res.Outcome.String()), res.Name)
	if len(res.Attempts) > 1 {
		line += fmt.Sprintf(" [%d attempts]", len(res.Attempts))
	}

	detail := res.Message
	if detail == "" {
		detail = res.Reason
	}
	if detail != "" {
		line += " - " + detail
	}
	return line
}

// SummaryLine renders non-zero outcome counts in report order with the run duration
func SummaryLine(report *harness.Report) string {
	parts := make([]string, 0, len(harness.AllOutcomes))
	for _, o := range harness.AllOutcomes {
		if n := report.Count(o); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, o.String()))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no scenarios ran")
	}

	return fmt.Sprintf("==== %s in %.2fs ====", strings.Join(parts, ", "), report.Duration.Seconds())
}
