package harness

import (
	"context"
	"fmt"
	"time"

	"weathercontract.app/internal/core/contract"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

// Observer is notified once per finished scenario
type Observer interface {
	OnResult(ctx context.Context, runID string, result Result)
}

type UseCase struct {
	logger    ports.Logger
	metrics   ports.MetricsRecorder
	observers []Observer
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

type UseCaseDependencies struct {
	Logger    ports.Logger
	Metrics   ports.MetricsRecorder
	Observers []Observer
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		observers: deps.Observers,
		now:       time.Now,
		sleep:     sleepContext,
	}, nil
}

// RunAll executes scenarios one after another and collects a report. Scenario
// names must be unique. When ctx is cancelled the remaining scenarios are not
// started and the partial report is returned with the context error.
func (uc *UseCase) RunAll(ctx context.Context, runID string, scenarios []Scenario) (*Report, error) {
	seen := make(map[string]struct{}, len(scenarios))
	for _, sc := range scenarios {
		if sc.Name == "" {
			return nil, errors.NewValidationError("scenario name cannot be empty")
		}
		if _, dup := seen[sc.Name]; dup {
			return nil, errors.NewValidationError(fmt.Sprintf("duplicate scenario name %q", sc.Name))
		}
		seen[sc.Name] = struct{}{}
	}

	report := &Report{
		RunID:     runID,
		StartedAt: uc.now(),
		Results:   make([]Result, 0, len(scenarios)),
	}

	uc.logger.Info("Starting run", ports.F("run_id", runID), ports.F("scenarios", len(scenarios)))

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Duration = uc.now().Sub(report.StartedAt)
			return report, err
		}

		result := uc.Execute(ctx, sc)
		report.Results = append(report.Results, result)

		if uc.metrics != nil {
			uc.metrics.RecordOutcome(result.Outcome.String())
		}
		for _, o := range uc.observers {
			o.OnResult(ctx, runID, result)
		}
	}

	report.Duration = uc.now().Sub(report.StartedAt)
	uc.logger.Info("Run finished",
		ports.F("run_id", runID),
		ports.F("duration_ms", report.Duration.Milliseconds()),
		ports.F("summary", report.Summary()))

	return report, nil
}

// Execute applies the scenario modifier, runs the body with reruns and
// classifies the result.
func (uc *UseCase) Execute(ctx context.Context, sc Scenario) Result {
	start := uc.now()
	result := Result{Name: sc.Name}
	if sc.Modifier != nil {
		result.Reason = sc.Modifier.Reason
	}

	if sc.Modifier != nil && sc.Modifier.Kind == contract.ModifierSkip {
		result.Outcome = OutcomeSkipped
		result.Message = sc.Modifier.Reason
		uc.logResult(result)
		return result
	}

	expectFailure := sc.Modifier != nil && sc.Modifier.Kind == contract.ModifierExpectFailure
	maxAttempts := 1
	if !expectFailure && sc.Reruns > 0 {
		maxAttempts += sc.Reruns
	}

	for n := 1; n <= maxAttempts; n++ {
		if n > 1 {
			uc.logger.Info("Rerunning scenario",
				ports.F("scenario", sc.Name),
				ports.F("attempt", n),
				ports.F("delay_ms", sc.RerunDelay.Milliseconds()))
			if err := uc.sleep(ctx, sc.RerunDelay); err != nil {
				break
			}
		}

		attempt := uc.runAttempt(ctx, sc, n)
		result.Attempts = append(result.Attempts, attempt)
		if uc.metrics != nil {
			uc.metrics.RecordAttempt(sc.Name)
		}
		if attempt.Outcome == OutcomePassed {
			break
		}
	}

	last := result.Attempts[len(result.Attempts)-1]
	result.StatusCode = last.StatusCode

	switch {
	case expectFailure && last.Outcome == OutcomePassed:
		result.Outcome = OutcomeUnexpectedPass
		result.Message = "[XPASS(strict)] " + result.Reason
	case expectFailure:
		result.Outcome = OutcomeExpectedFailure
		result.Message = last.Message
	case last.Outcome == OutcomePassed && len(result.Attempts) > 1:
		result.Outcome = OutcomeRerunPassed
	default:
		result.Outcome = last.Outcome
		result.Message = last.Message
	}

	result.Elapsed = uc.now().Sub(start)
	uc.logResult(result)
	return result
}

func (uc *UseCase) runAttempt(ctx context.Context, sc Scenario, number int) (attempt Attempt) {
	attempt.Number = number
	start := uc.now()

	defer func() {
		if r := recover(); r != nil {
			attempt.Outcome = OutcomeErrored
			attempt.Message = fmt.Sprintf("panic: %v", r)
		}
		attempt.Elapsed = uc.now().Sub(start)
	}()

	if sc.Run == nil {
		attempt.Outcome = OutcomeErrored
		attempt.Message = "scenario has no body"
		return attempt
	}

	err := sc.Run(ctx, &attempt)
	attempt.Outcome = classify(err)
	if err != nil {
		attempt.Message = err.Error()
	}
	return attempt
}

// classify maps a body error onto the outcome taxonomy: assertion failures
// fail, anything else is an error.
func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomePassed
	case errors.IsAssertionFailure(err):
		return OutcomeFailed
	default:
		return OutcomeErrored
	}
}

func (uc *UseCase) logResult(result Result) {
	fields := []ports.Field{
		ports.F("scenario", result.Name),
		ports.F("outcome", result.Outcome.String()),
		ports.F("attempts", len(result.Attempts)),
	}
	if result.Message != "" {
		fields = append(fields, ports.F("message", result.Message))
	}

	if result.Outcome.IsProblem() {
		uc.logger.Warn("Scenario finished", fields...)
		return
	}
	uc.logger.Info("Scenario finished", fields...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
