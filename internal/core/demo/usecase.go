// Package demo holds the two hand-written scenarios that show how faults and
// flaky checks surface in a run report.
package demo

import (
	"context"
	stderrors "errors"
	"time"

	"weathercontract.app/internal/core/harness"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

const (
	ErrorScenarioName = "test_program_error_demo"
	FlakyScenarioName = "test_flaky_rerun_demo"

	DefaultFlakyReruns     = 1
	DefaultFlakyRerunDelay = 500 * time.Millisecond
)

// ErrIntentional is raised by the error demo before any assertion runs
var ErrIntentional = stderrors.New("Intentional error to demonstrate 'ERROR' outcome in report")

type UseCase struct {
	counter    ports.AttemptCounter
	reruns     int
	rerunDelay time.Duration
}

type UseCaseDependencies struct {
	Counter    ports.AttemptCounter
	Reruns     int
	RerunDelay time.Duration
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Counter == nil {
		return nil, errors.NewValidationError("attempt counter is required")
	}
	if deps.Reruns < 0 {
		return nil, errors.NewValidationError("reruns cannot be negative")
	}

	return &UseCase{
		counter:    deps.Counter,
		reruns:     deps.Reruns,
		rerunDelay: deps.RerunDelay,
	}, nil
}

// ErrorScenario always ends in the error outcome.
func (uc *UseCase) ErrorScenario() harness.Scenario {
	return harness.Scenario{
		Name: ErrorScenarioName,
		Run: func(context.Context, *harness.Attempt) error {
			return ErrIntentional
		},
	}
}

// FlakyScenario fails its first attempt within a run and passes afterwards.
// The attempt count lives in the injected counter under a run-scoped key.
func (uc *UseCase) FlakyScenario(runID string) harness.Scenario {
	key := FlakyKey(runID)
	return harness.Scenario{
		Name:       FlakyScenarioName,
		Reruns:     uc.reruns,
		RerunDelay: uc.rerunDelay,
		Run: func(ctx context.Context, _ *harness.Attempt) error {
			n, err := uc.counter.Increment(ctx, key)
			if err != nil {
				return err
			}
			if n <= 1 {
				return errors.NewAssertionError("Flaky failure on first run; should pass on rerun")
			}
			return nil
		},
	}
}

// FlakyKey is the counter key the flaky demo uses within a run
func FlakyKey(runID string) string {
	return runID + ":" + FlakyScenarioName
}

// Release drops the run's attempt count once the run is over
func (uc *UseCase) Release(ctx context.Context, runID string) error {
	return uc.counter.Reset(ctx, FlakyKey(runID))
}

// Scenarios returns both demonstrations in report order
func (uc *UseCase) Scenarios(runID string) []harness.Scenario {
	return []harness.Scenario{uc.ErrorScenario(), uc.FlakyScenario(runID)}
}
