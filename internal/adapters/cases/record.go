package cases

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"weathercontract.app/internal/core/contract"
	"weathercontract.app/pkg/errors"
)

// CaseRecord is the on-disk shape of a case, shared by every source format
type CaseRecord struct {
	Name           string `json:"name" yaml:"name" validate:"required"`
	Endpoint       string `json:"endpoint" yaml:"endpoint" validate:"required,startswith=/"`
	Method         string `json:"method" yaml:"method" validate:"required,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	ExpectedStatus int    `json:"expected_status" yaml:"expected_status" validate:"required,min=100,max=599"`
	Schema         string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Mark           string `json:"mark,omitempty" yaml:"mark,omitempty" validate:"omitempty,oneof=xfail skip"`
	Reason         string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (r *CaseRecord) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Endpoint = strings.TrimSpace(r.Endpoint)
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	r.Schema = strings.TrimSpace(r.Schema)
	r.Mark = strings.ToLower(strings.TrimSpace(r.Mark))
}

// toCases validates records in order and converts them. Names must be unique.
func toCases(validate *validator.Validate, records []CaseRecord) ([]contract.Case, error) {
	result := make([]contract.Case, 0, len(records))
	seen := make(map[string]int, len(records))

	for i := range records {
		rec := records[i]
		rec.normalize()

		if err := validate.Struct(rec); err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("case #%d (%q): %s", i+1, rec.Name, describe(err)))
		}

		if first, dup := seen[rec.Name]; dup {
			return nil, errors.NewValidationError(fmt.Sprintf("case #%d: duplicate name %q (first defined as case #%d)", i+1, rec.Name, first))
		}
		seen[rec.Name] = i + 1

		modifier, err := contract.ModifierFromMark(rec.Mark, rec.Reason)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("case #%d (%q): %s", i+1, rec.Name, err.Error()))
		}

		result = append(result, contract.Case{
			Name:           rec.Name,
			Endpoint:       rec.Endpoint,
			Method:         rec.Method,
			ExpectedStatus: rec.ExpectedStatus,
			Schema:         rec.Schema,
			Modifier:       modifier,
		})
	}

	return result, nil
}

func describe(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
