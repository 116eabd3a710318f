package database

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"weathercontract.app/internal/core/harness"
	"weathercontract.app/pkg/errors"
)

const defaultListLimit = 20

// ReportRepositoryAdapter stores run reports using GORM
type ReportRepositoryAdapter struct {
	db *gorm.DB
}

// NewReportRepositoryAdapter creates a new report repository adapter
func NewReportRepositoryAdapter(db *gorm.DB) *ReportRepositoryAdapter {
	return &ReportRepositoryAdapter{db: db}
}

// SaveReport persists the run and all its results in one transaction
func (r *ReportRepositoryAdapter) SaveReport(ctx context.Context, report *harness.Report) error {
	if report == nil {
		return errors.NewValidationError("report cannot be nil")
	}
	if report.RunID == "" {
		return errors.NewValidationError("report run ID cannot be empty")
	}

	model := reportToModel(report)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return errors.NewDatabaseError(fmt.Sprintf("failed to save run %s", report.RunID), err)
	}

	return nil
}

// FindRun loads a stored run with its results in case order
func (r *ReportRepositoryAdapter) FindRun(ctx context.Context, runID string) (*harness.Report, error) {
	if runID == "" {
		return nil, errors.NewValidationError("run ID cannot be empty")
	}

	var model RunModel
	err := r.db.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("run_id = ?", runID).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("run %s not found", runID))
		}
		return nil, errors.NewDatabaseError("failed to find run", err)
	}

	return modelToReport(&model), nil
}

// ListRecentRuns returns the newest runs first
func (r *ReportRepositoryAdapter) ListRecentRuns(ctx context.Context, limit int) ([]harness.RunSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var models []RunModel
	err := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list runs", err)
	}

	summaries := make([]harness.RunSummary, len(models))
	for i := range models {
		summaries[i] = modelToSummary(&models[i])
	}
	return summaries, nil
}

func reportToModel(report *harness.Report) *RunModel {
	model := &RunModel{
		RunID:      report.RunID,
		StartedAt:  report.StartedAt,
		DurationMS: report.Duration.Milliseconds(),
		Total:      len(report.Results),
		Passed:     report.Count(harness.OutcomePassed),
		Failed:     report.Count(harness.OutcomeFailed),
		Errored:    report.Count(harness.OutcomeErrored),
		Skipped:    report.Count(harness.OutcomeSkipped),
		XFailed:    report.Count(harness.OutcomeExpectedFailure),
		XPassed:    report.Count(harness.OutcomeUnexpectedPass),
		Reruns:     report.Count(harness.OutcomeRerunPassed),
		Succeeded:  !report.Failed(),
		Results:    make([]CaseResultModel, len(report.Results)),
	}

	for i, res := range report.Results {
		attempts := make([]AttemptRecord, len(res.Attempts))
		for j, a := range res.Attempts {
			attempts[j] = AttemptRecord{
				Number:     a.Number,
				Outcome:    a.Outcome.String(),
				Message:    a.Message,
				StatusCode: a.StatusCode,
				ElapsedMS:  a.Elapsed.Milliseconds(),
			}
		}
		model.Results[i] = CaseResultModel{
			Position:   i,
			Name:       res.Name,
			Outcome:    res.Outcome.String(),
			Reason:     res.Reason,
			Message:    res.Message,
			StatusCode: res.StatusCode,
			ElapsedMS:  res.Elapsed.Milliseconds(),
			Attempts:   attempts,
		}
	}

	return model
}

func modelToReport(model *RunModel) *harness.Report {
	report := &harness.Report{
		RunID:     model.RunID,
		StartedAt: model.StartedAt,
		Duration:  time.Duration(model.DurationMS) * time.Millisecond,
		Results:   make([]harness.Result, len(model.Results)),
	}

	for i, res := range model.Results {
		attempts := make([]harness.Attempt, len(res.Attempts))
		for j, a := range res.Attempts {
			attempts[j] = harness.Attempt{
				Number:     a.Number,
				Outcome:    harness.OutcomeFromString(a.Outcome),
				Message:    a.Message,
				StatusCode: a.StatusCode,
				Elapsed:    time.Duration(a.ElapsedMS) * time.Millisecond,
			}
		}
		report.Results[i] = harness.Result{
			Name:       res.Name,
			Outcome:    harness.OutcomeFromString(res.Outcome),
			Reason:     res.Reason,
			Message:    res.Message,
			StatusCode: res.StatusCode,
			Attempts:   attempts,
			Elapsed:    time.Duration(res.ElapsedMS) * time.Millisecond,
		}
	}

	return report
}

func modelToSummary(model *RunModel) harness.RunSummary {
	return harness.RunSummary{
		RunID:     model.RunID,
		StartedAt: model.StartedAt,
		Duration:  time.Duration(model.DurationMS) * time.Millisecond,
		Total:     model.Total,
		Counts: map[string]int{
			harness.OutcomePassed.String():          model.Passed,
			harness.OutcomeFailed.String():          model.Failed,
			harness.OutcomeErrored.String():         model.Errored,
			harness.OutcomeSkipped.String():         model.Skipped,
			harness.OutcomeExpectedFailure.String(): model.XFailed,
			harness.OutcomeUnexpectedPass.String():  model.XPassed,
			harness.OutcomeRerunPassed.String():     model.Reruns,
		},
		Failed: !model.Succeeded,
	}
}
