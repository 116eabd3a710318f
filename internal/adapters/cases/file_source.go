package cases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
	"weathercontract.app/internal/core/contract"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

const defaultSheet = "Sheet1"

// FileCaseSource reads the ordered case list from a JSON, YAML or XLSX file
type FileCaseSource struct {
	path     string
	sheet    string
	validate *validator.Validate
	logger   ports.Logger
}

// FileCaseSourceParams holds parameters for creating a file case source
type FileCaseSourceParams struct {
	Path   string
	Sheet  string // only used for .xlsx files
	Logger ports.Logger
}

// NewFileCaseSource creates a case source for the given file
func NewFileCaseSource(params FileCaseSourceParams) (*FileCaseSource, error) {
	if strings.TrimSpace(params.Path) == "" {
		return nil, errors.NewValidationError("case file path cannot be empty")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	sheet := params.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	return &FileCaseSource{
		path:     params.Path,
		sheet:    sheet,
		validate: validator.New(),
		logger:   params.Logger,
	}, nil
}

// Load reads, validates and converts every case in file order
func (s *FileCaseSource) Load(ctx context.Context) ([]contract.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records []CaseRecord
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".json":
		records, err = s.readJSON()
	case ".yaml", ".yml":
		records, err = s.readYAML()
	case ".xlsx":
		records, err = s.readXLSX()
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported case file extension %q", ext))
	}
	if err != nil {
		return nil, err
	}

	cases, err := toCases(s.validate, records)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loaded cases", ports.F("path", s.path), ports.F("count", len(cases)))
	return cases, nil
}

func (s *FileCaseSource) readFile() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewResourceError(fmt.Sprintf("case file %s not found", s.path), err)
		}
		return nil, errors.NewResourceError(fmt.Sprintf("failed to read case file %s", s.path), err)
	}
	return data, nil
}

func (s *FileCaseSource) readJSON() ([]CaseRecord, error) {
	data, err := s.readFile()
	if err != nil {
		return nil, err
	}

	var records []CaseRecord
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return nil, errors.NewDecodeError(fmt.Sprintf("case file %s is not a JSON array of cases", s.path), err)
	}
	return records, nil
}

func (s *FileCaseSource) readYAML() ([]CaseRecord, error) {
	data, err := s.readFile()
	if err != nil {
		return nil, err
	}

	var records []CaseRecord
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&records); err != nil {
		return nil, errors.NewDecodeError(fmt.Sprintf("case file %s is not a YAML sequence of cases", s.path), err)
	}
	return records, nil
}

// readXLSX expects a header row naming the record fields; column order is free.
func (s *FileCaseSource) readXLSX() ([]CaseRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("failed to open case workbook %s", s.path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("Failed to close case workbook", ports.F("path", s.path), ports.F("error", closeErr))
		}
	}()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, errors.NewResourceError(fmt.Sprintf("failed to read sheet %s", s.sheet), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("sheet %s has no header row", s.sheet))
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"name", "endpoint", "method", "expected_status"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("sheet %s is missing column %q", s.sheet, required))
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]CaseRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		status, err := strconv.Atoi(cell(row, "expected_status"))
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("row %d: expected_status %q is not a number", i+2, cell(row, "expected_status")))
		}

		records = append(records, CaseRecord{
			Name:           cell(row, "name"),
			Endpoint:       cell(row, "endpoint"),
			Method:         cell(row, "method"),
			ExpectedStatus: status,
			Schema:         cell(row, "schema"),
			Mark:           cell(row, "mark"),
			Reason:         cell(row, "reason"),
		})
	}

	return records, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
