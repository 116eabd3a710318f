package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

type UseCase struct {
	baseURL string
	client  ports.HTTPClient
	schemas ports.SchemaValidator
	metrics ports.MetricsRecorder
	logger  ports.Logger
}

type UseCaseDependencies struct {
	BaseURL         string
	HTTPClient      ports.HTTPClient
	SchemaValidator ports.SchemaValidator
	Metrics         ports.MetricsRecorder
	Logger          ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if strings.TrimSpace(deps.BaseURL) == "" {
		return nil, errors.NewValidationError("base URL is required")
	}
	if deps.HTTPClient == nil {
		return nil, errors.NewValidationError("HTTP client is required")
	}
	if deps.SchemaValidator == nil {
		return nil, errors.NewValidationError("schema validator is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		baseURL: deps.BaseURL,
		client:  deps.HTTPClient,
		schemas: deps.SchemaValidator,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}, nil
}

// Check issues the case request and asserts on its status code and, when the
// case names one, its schema. The observation is returned even when the check
// fails so callers can report what was seen.
func (uc *UseCase) Check(ctx context.Context, c Case) (*Observation, error) {
	if err := c.IsValid(); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid case %q: %s", c.Name, err.Error()))
	}

	obs, err := uc.do(ctx, c)
	if err != nil {
		return nil, err
	}

	if obs.StatusCode != c.ExpectedStatus {
		return obs, errors.NewAssertionError(statusMismatchMessage(c.ExpectedStatus, obs.StatusCode, obs.Body))
	}

	if !c.HasSchema() {
		return obs, nil
	}

	var document interface{}
	decoder := json.NewDecoder(bytes.NewReader(obs.Body))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return obs, errors.NewDecodeError("response body is not valid JSON", err)
	}

	if err := uc.schemas.Validate(c.Schema, document); err != nil {
		return obs, err
	}

	return obs, nil
}

func (uc *UseCase) do(ctx context.Context, c Case) (*Observation, error) {
	url := c.URL(uc.baseURL)

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(c.Method), url, nil)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot build request for case %q: %v", c.Name, err))
	}

	start := time.Now()
	resp, err := uc.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("%s %s failed", req.Method, url), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			uc.logger.Warn("Failed to close response body", ports.F("case", c.Name), ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("reading response of %s %s failed", req.Method, url), err)
	}

	if uc.metrics != nil {
		uc.metrics.RecordRequest(req.Method, resp.StatusCode, elapsed)
	}
	uc.logger.Debug("Case request completed",
		ports.F("case", c.Name),
		ports.F("method", req.Method),
		ports.F("url", url),
		ports.F("status", resp.StatusCode),
		ports.F("elapsed_ms", elapsed.Milliseconds()))

	return &Observation{
		URL:        url,
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		Body:       body,
	}, nil
}

// statusMismatchMessage appends the API's own message when the body has one.
func statusMismatchMessage(expected, actual int, body []byte) string {
	msg := fmt.Sprintf("Expected %d, got %d", expected, actual)
	if !gjson.ValidBytes(body) {
		return msg
	}
	if apiMsg := gjson.GetBytes(body, "message"); apiMsg.Exists() && apiMsg.String() != "" {
		msg += ": " + apiMsg.String()
	}
	return msg
}
