package contract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mocks "weathercontract.app/internal/mocks"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

func newTestUseCase(t *testing.T, baseURL string, client ports.HTTPClient, validator ports.SchemaValidator, metrics ports.MetricsRecorder, logger ports.Logger) *UseCase {
	t.Helper()
	uc, err := NewUseCase(UseCaseDependencies{
		BaseURL:         baseURL,
		HTTPClient:      client,
		SchemaValidator: validator,
		Metrics:         metrics,
		Logger:          logger,
	})
	require.NoError(t, err)
	return uc
}

// quietLogger accepts any log call
func quietLogger(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func TestNewUseCase_RequiresDependencies(t *testing.T) {
	_, err := NewUseCase(UseCaseDependencies{})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewUseCase(UseCaseDependencies{BaseURL: "http://x", HTTPClient: http.DefaultClient})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewUseCase(UseCaseDependencies{
		BaseURL:         "http://x",
		HTTPClient:      http.DefaultClient,
		SchemaValidator: mocks.NewSchemaValidator(t),
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_Check_StatusAndSchemaPass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"London","main":{"temp":15.5}}`))
	}))
	defer server.Close()

	mockValidator := mocks.NewSchemaValidator(t)
	mockMetrics := mocks.NewMetricsRecorder(t)
	mockLogger := mocks.NewLogger(t)

	mockValidator.EXPECT().
		Validate("weather_schema.json", mock.AnythingOfType("map[string]interface {}")).
		Return(nil).
		Once()
	mockMetrics.EXPECT().RecordRequest("GET", http.StatusOK, mock.AnythingOfType("time.Duration")).Once()
	mockLogger.EXPECT().Debug("Case request completed", mock.Anything).Once()

	uc := newTestUseCase(t, server.URL+"/data/2.5", &http.Client{Timeout: 5 * time.Second}, mockValidator, mockMetrics, mockLogger)

	obs, err := uc.Check(context.Background(), Case{
		Name:           "current_weather",
		Endpoint:       "/weather?q=London",
		Method:         "get",
		ExpectedStatus: http.StatusOK,
		Schema:         "weather_schema.json",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, obs.StatusCode)
	assert.Equal(t, server.URL+"/data/2.5/weather?q=London", obs.URL)
}

func TestUseCase_Check_StatusMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer server.Close()

	// No Validate expectation: the schema must not be consulted after a status mismatch.
	mockValidator := mocks.NewSchemaValidator(t)
	mockMetrics := mocks.NewMetricsRecorder(t)
	mockMetrics.EXPECT().RecordRequest("GET", http.StatusUnauthorized, mock.Anything).Once()

	uc := newTestUseCase(t, server.URL, http.DefaultClient, mockValidator, mockMetrics, quietLogger(t))

	obs, err := uc.Check(context.Background(), Case{
		Name: "current_weather", Endpoint: "/weather", Method: "GET", ExpectedStatus: 200, Schema: "weather_schema.json",
	})

	require.Error(t, err)
	assert.True(t, errors.IsAssertionFailure(err))
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Expected 200, got 401: Invalid API key", appErr.Message)
	assert.Equal(t, http.StatusUnauthorized, obs.StatusCode)
}

func TestUseCase_Check_StatusMismatchWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	uc := newTestUseCase(t, server.URL, http.DefaultClient, mocks.NewSchemaValidator(t), nil, quietLogger(t))
	_, err := uc.Check(context.Background(), Case{Name: "c", Endpoint: "/x", Method: "GET", ExpectedStatus: 200})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Expected 200, got 404", appErr.Message)
}

func TestUseCase_Check_NoSchemaSkipsDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html>not found</html>`))
	}))
	defer server.Close()

	uc := newTestUseCase(t, server.URL, http.DefaultClient, mocks.NewSchemaValidator(t), nil, quietLogger(t))

	_, err := uc.Check(context.Background(), Case{Name: "missing", Endpoint: "/nope", Method: "GET", ExpectedStatus: 404})
	assert.NoError(t, err)
}

func TestUseCase_Check_MalformedJSONIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main": `))
	}))
	defer server.Close()

	uc := newTestUseCase(t, server.URL, http.DefaultClient, mocks.NewSchemaValidator(t), nil, quietLogger(t))
	_, err := uc.Check(context.Background(), Case{Name: "c", Endpoint: "/x", Method: "GET", ExpectedStatus: 200, Schema: "s.json"})

	assert.True(t, errors.IsDecodeError(err))
	assert.False(t, errors.IsAssertionFailure(err))
}

func TestUseCase_Check_SchemaErrorsPropagate(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		assertion bool
	}{
		{name: "violation fails", err: errors.NewSchemaViolationError("missing property main", nil), assertion: true},
		{name: "missing schema errors", err: errors.NewResourceError("schema not found", nil), assertion: false},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockValidator := mocks.NewSchemaValidator(t)
			mockValidator.EXPECT().Validate("s.json", mock.Anything).Return(tt.err).Once()

			uc := newTestUseCase(t, server.URL, http.DefaultClient, mockValidator, nil, quietLogger(t))
			_, err := uc.Check(context.Background(), Case{Name: "c", Endpoint: "/x", Method: "GET", ExpectedStatus: 200, Schema: "s.json"})

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.assertion, errors.IsAssertionFailure(err))
		})
	}
}

func TestUseCase_Check_NetworkErrorIsFault(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	mockClient.EXPECT().Do(mock.AnythingOfType("*http.Request")).Return(nil, io.ErrUnexpectedEOF).Once()

	uc := newTestUseCase(t, "http://weather.test", mockClient, mocks.NewSchemaValidator(t), nil, quietLogger(t))
	obs, err := uc.Check(context.Background(), Case{Name: "c", Endpoint: "/x", Method: "GET", ExpectedStatus: 200})

	assert.Nil(t, obs)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestUseCase_Check_RequestIsBuiltFromCase(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	mockClient.EXPECT().Do(mock.Anything).
		Run(func(req *http.Request) {
			assert.Equal(t, http.MethodHead, req.Method)
			assert.Equal(t, "http://weather.test/api/weather?q=Paris", req.URL.String())
		}).
		Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil).
		Once()

	uc := newTestUseCase(t, "http://weather.test/api", mockClient, mocks.NewSchemaValidator(t), nil, quietLogger(t))
	obs, err := uc.Check(context.Background(), Case{Name: "head", Endpoint: "/weather?q=Paris", Method: "head", ExpectedStatus: 200})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, obs.StatusCode)
}

func TestUseCase_Check_InvalidCase(t *testing.T) {
	// The client is never called for an invalid case.
	uc := newTestUseCase(t, "http://127.0.0.1:1", mocks.NewHTTPClient(t), mocks.NewSchemaValidator(t), nil, mocks.NewLogger(t))
	_, err := uc.Check(context.Background(), Case{Name: "c", Endpoint: "/x", Method: "GET", ExpectedStatus: 0})
	assert.True(t, errors.IsValidationError(err))
}
