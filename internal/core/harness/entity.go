package harness

import (
	"context"
	"time"

	"weathercontract.app/internal/core/contract"
)

// Outcome is the reported category of a scenario
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePassed
	OutcomeFailed
	OutcomeErrored
	OutcomeSkipped
	OutcomeExpectedFailure
	OutcomeUnexpectedPass
	OutcomeRerunPassed
)

// AllOutcomes lists the known outcomes in report order
var AllOutcomes = []Outcome{
	OutcomePassed,
	OutcomeFailed,
	OutcomeErrored,
	OutcomeSkipped,
	OutcomeExpectedFailure,
	OutcomeUnexpectedPass,
	OutcomeRerunPassed,
}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeErrored:
		return "error"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeExpectedFailure:
		return "xfailed"
	case OutcomeUnexpectedPass:
		return "xpassed_strict"
	case OutcomeRerunPassed:
		return "rerun_passed"
	default:
		return "unknown"
	}
}

// OutcomeFromString converts the string form back to an Outcome
func OutcomeFromString(s string) Outcome {
	for _, o := range AllOutcomes {
		if o.String() == s {
			return o
		}
	}
	return OutcomeUnknown
}

// IsProblem reports whether the outcome makes the run fail
func (o Outcome) IsProblem() bool {
	return o == OutcomeFailed || o == OutcomeErrored || o == OutcomeUnexpectedPass
}

// Scenario is one unit of execution: a data-driven case or a hand-written check.
type Scenario struct {
	Name       string
	Modifier   *contract.Modifier
	Reruns     int
	RerunDelay time.Duration
	Run        func(ctx context.Context, attempt *Attempt) error
}

// Attempt is one execution of a scenario body
type Attempt struct {
	Number     int
	Outcome    Outcome
	Message    string
	StatusCode int
	Elapsed    time.Duration
}

// Result is the final classification of a scenario
type Result struct {
	Name       string
	Outcome    Outcome
	Reason     string
	Message    string
	StatusCode int
	Attempts   []Attempt
	Elapsed    time.Duration
}

// Report is the outcome of one run
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Results   []Result
}

// Count returns how many results have the given outcome
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Summary returns result counts keyed by outcome name
func (r *Report) Summary() map[string]int {
	summary := make(map[string]int, len(AllOutcomes))
	for _, o := range AllOutcomes {
		summary[o.String()] = r.Count(o)
	}
	return summary
}

// Failed reports whether any result is a failure, an error or a strict unexpected pass
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Outcome.IsProblem() {
			return true
		}
	}
	return false
}

// Result returns the result with the given name
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// RunSummary is the condensed view of a stored run
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Counts    map[string]int
	Failed    bool
}

// RunSummary condenses the report
func (r *Report) RunSummary() RunSummary {
	return RunSummary{
		RunID:     r.RunID,
		StartedAt: r.StartedAt,
		Duration:  r.Duration,
		Total:     len(r.Results),
		Counts:    r.Summary(),
		Failed:    r.Failed(),
	}
}
