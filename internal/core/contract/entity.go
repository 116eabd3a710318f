package contract

import (
	"fmt"
	"strings"
	"time"
)

// ModifierKind enumerates the ways a case can be modified before execution
type ModifierKind int

const (
	ModifierSkip ModifierKind = iota + 1
	ModifierExpectFailure
)

// Raw mark values accepted in case lists
const (
	MarkSkip  = "skip"
	MarkXFail = "xfail"
)

// String returns the mark spelling of the modifier kind
func (k ModifierKind) String() string {
	switch k {
	case ModifierSkip:
		return MarkSkip
	case ModifierExpectFailure:
		return MarkXFail
	default:
		return "unknown"
	}
}

// Modifier marks a case as skipped or expected to fail, with the reason why
type Modifier struct {
	Kind   ModifierKind
	Reason string
}

// Skip returns a skip modifier
func Skip(reason string) *Modifier {
	return &Modifier{Kind: ModifierSkip, Reason: reason}
}

// ExpectFailure returns a strict expected-failure modifier
func ExpectFailure(reason string) *Modifier {
	return &Modifier{Kind: ModifierExpectFailure, Reason: reason}
}

// ModifierFromMark converts a raw mark to a modifier. An empty mark yields nil.
func ModifierFromMark(mark, reason string) (*Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(mark)) {
	case "":
		return nil, nil
	case MarkSkip:
		return Skip(reason), nil
	case MarkXFail:
		return ExpectFailure(reason), nil
	default:
		return nil, fmt.Errorf("unknown mark %q", mark)
	}
}

// Case is one data-driven HTTP contract check
type Case struct {
	Name           string
	Endpoint       string
	Method         string
	ExpectedStatus int
	Schema         string
	Modifier       *Modifier
}

// HasSchema reports whether the response body must be validated
func (c Case) HasSchema() bool {
	return strings.TrimSpace(c.Schema) != ""
}

// IsSkipped reports whether the case must not be executed
func (c Case) IsSkipped() bool {
	return c.Modifier != nil && c.Modifier.Kind == ModifierSkip
}

// IsValid validates the case descriptor
func (c Case) IsValid() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(c.Method) == "" {
		return fmt.Errorf("method cannot be empty")
	}
	if c.ExpectedStatus < 100 || c.ExpectedStatus > 599 {
		return fmt.Errorf("expected status %d is not a valid HTTP status", c.ExpectedStatus)
	}
	return nil
}

// URL joins the base URL and the case endpoint
func (c Case) URL(baseURL string) string {
	return baseURL + c.Endpoint
}

// Observation is what the harness saw when it issued a case request
type Observation struct {
	URL        string
	StatusCode int
	Elapsed    time.Duration
	Body       []byte
}
