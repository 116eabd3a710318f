package harness

import (
	"context"

	"weathercontract.app/internal/core/contract"
)

// Checker performs the contract check of a single case
type Checker interface {
	Check(ctx context.Context, c contract.Case) (*contract.Observation, error)
}

// CaseScenario wraps a case as a scenario. Data-driven cases are never rerun.
func CaseScenario(c contract.Case, checker Checker) Scenario {
	return Scenario{
		Name:     c.Name,
		Modifier: c.Modifier,
		Run: func(ctx context.Context, attempt *Attempt) error {
			obs, err := checker.Check(ctx, c)
			if obs != nil {
				attempt.StatusCode = obs.StatusCode
			}
			return err
		},
	}
}

// CaseScenarios wraps every case, preserving order
func CaseScenarios(cases []contract.Case, checker Checker) []Scenario {
	scenarios := make([]Scenario, 0, len(cases))
	for _, c := range cases {
		scenarios = append(scenarios, CaseScenario(c, checker))
	}
	return scenarios
}
