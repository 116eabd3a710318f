// Package contracttest runs harness scenarios as Go subtests so a case list
// can be checked with plain `go test`.
package contracttest

import (
	"context"
	"testing"

	"weathercontract.app/internal/core/harness"
)

// Executor runs a single scenario to its final result
type Executor interface {
	Execute(ctx context.Context, sc harness.Scenario) harness.Result
}

// Run executes every scenario as a subtest named after it and returns the results in order
func Run(t *testing.T, executor Executor, scenarios []harness.Scenario) []harness.Result {
	t.Helper()

	results := make([]harness.Result, 0, len(scenarios))
	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			res := executor.Execute(context.Background(), sc)
			results = append(results, res)
			Report(t, res)
		})
	}
	return results
}

// Report maps a result onto tb: problems fail the test, skips and expected
// failures skip it, everything else is logged.
func Report(tb testing.TB, res harness.Result) {
	tb.Helper()

	if len(res.Attempts) > 1 {
		for _, a := range res.Attempts[:len(res.Attempts)-1] {
			tb.Logf("attempt %d: %s %s", a.Number, a.Outcome, a.Message)
		}
	}

	switch res.Outcome {
	case harness.OutcomeFailed, harness.OutcomeErrored, harness.OutcomeUnexpectedPass:
		tb.Errorf("%s: %s", res.Outcome, res.Message)
	case harness.OutcomeSkipped:
		tb.Skipf("skipped: %s", res.Reason)
	case harness.OutcomeExpectedFailure:
		tb.Skipf("xfail (%s): %s", res.Reason, res.Message)
	case harness.OutcomeRerunPassed:
		tb.Logf("passed after %d attempts", len(res.Attempts))
	default:
		tb.Logf("%s", res.Outcome)
	}
}
