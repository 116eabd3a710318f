package reporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"weathercontract.app/internal/core/harness"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"

	patternType  = "pattern"
	patternSolid = 1
	problemColor = "FF5900"
	noticeColor  = "FFEB9C"

	defaultColumnWidth = 16
	messageColumnWidth = 60
)

var resultHeaders = []string{
	"#", "Scenario", "Outcome", "Status Code", "Attempts", "Elapsed (ms)", "Reason", "Message",
}

// XLSXReporter writes a run report as a workbook with a results and a summary sheet
type XLSXReporter struct {
	path   string
	logger ports.Logger
}

// NewXLSXReporter creates a workbook reporter writing to path
func NewXLSXReporter(path string, logger ports.Logger) (*XLSXReporter, error) {
	if path == "" {
		return nil, errors.NewValidationError("report path cannot be empty")
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &XLSXReporter{path: path, logger: logger}, nil
}

// Write renders report and saves the workbook, replacing any existing file
func (r *XLSXReporter) Write(report *harness.Report) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn("Failed to close report workbook", ports.F("error", err))
		}
	}()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return errors.NewResourceError("failed to name results sheet", err)
	}
	if err := r.writeResults(f, report); err != nil {
		return errors.NewResourceError("failed to write results sheet", err)
	}
	if err := r.writeSummary(f, report); err != nil {
		return errors.NewResourceError("failed to write summary sheet", err)
	}

	if err := f.SaveAs(r.path); err != nil {
		return errors.NewResourceError(fmt.Sprintf("failed to save report %s", r.path), err)
	}

	r.logger.Info("Report workbook written", ports.F("path", r.path), ports.F("run_id", report.RunID))
	return nil
}

func (r *XLSXReporter) writeResults(f *excelize.File, report *harness.Report) error {
	problemStyle, err := fillStyle(f, problemColor)
	if err != nil {
		return err
	}
	noticeStyle, err := fillStyle(f, noticeColor)
	if err != nil {
		return err
	}

	if err := f.SetColWidth(resultsSheet, "A", "G", defaultColumnWidth); err != nil {
		return err
	}
	if err := f.SetColWidth(resultsSheet, "H", "H", messageColumnWidth); err != nil {
		return err
	}

	header := make([]interface{}, len(resultHeaders))
	for i, h := range resultHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return err
	}

	for i, res := range report.Results {
		row := i + 2
		values := []interface{}{
			i + 1,
			res.Name,
			res.Outcome.String(),
			res.StatusCode,
			len(res.Attempts),
			res.Elapsed.Milliseconds(),
			res.Reason,
			res.Message,
		}

		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultsSheet, start, &values); err != nil {
			return err
		}

		style := 0
		switch res.Outcome {
		case harness.OutcomeFailed, harness.OutcomeErrored, harness.OutcomeUnexpectedPass:
			style = problemStyle
		case harness.OutcomeExpectedFailure, harness.OutcomeRerunPassed, harness.OutcomeSkipped:
			style = noticeStyle
		}
		if style == 0 {
			continue
		}

		end, err := excelize.CoordinatesToCellName(len(values), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(resultsSheet, start, end, style); err != nil {
			return err
		}
	}

	return nil
}

func (r *XLSXReporter) writeSummary(f *excelize.File, report *harness.Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Run ID", report.RunID},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05")},
		{"Duration (s)", report.Duration.Seconds()},
		{"Total", len(report.Results)},
	}
	for _, o := range harness.AllOutcomes {
		rows = append(rows, []interface{}{o.String(), report.Count(o)})
	}
	status := "PASSED"
	if report.Failed() {
		status = "FAILED"
	}
	rows = append(rows, []interface{}{"Result", status})

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	return f.SetColWidth(summarySheet, "A", "B", defaultColumnWidth*2)
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    patternType,
			Pattern: patternSolid,
			Color:   []string{color},
		},
	})
}
