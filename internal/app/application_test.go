package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"weathercontract.app/internal/adapters/mockserver"
	"weathercontract.app/internal/config"
	"weathercontract.app/internal/core/demo"
	"weathercontract.app/internal/core/harness"
	mocks "weathercontract.app/internal/mocks"
	"weathercontract.app/pkg/errors"
)

// quietLogger accepts any log call
func quietLogger(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

func testConfig(baseURL, dir string) *config.Config {
	return &config.Config{
		Target: config.TargetConfig{BaseURL: baseURL, HTTPTimeout: 5},
		Cases: config.CasesConfig{
			File:      filepath.Join("..", "..", "testdata", "cases", "test_data.json"),
			Sheet:     "Sheet1",
			SchemaDir: filepath.Join("..", "..", "testdata", "schemas"),
		},
		Execution: config.ExecutionConfig{IncludeDemos: true, FlakyReruns: 1, FlakyRerunDelayMS: 1},
		Counter:   config.CounterConfig{Type: config.CounterTypeMemory},
		Results: config.ResultsConfig{
			Store:      config.StoreTypeSQLite,
			SQLitePath: filepath.Join(dir, "results.db"),
		},
		Report: config.ReportConfig{
			XLSXPath:        filepath.Join(dir, "report.xlsx"),
			MetricsTextfile: filepath.Join(dir, "contract.prom"),
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}

type ApplicationTestSuite struct {
	suite.Suite
	server *httptest.Server
	dir    string
	out    *bytes.Buffer
	app    *Application
}

func (s *ApplicationTestSuite) SetupTest() {
	weatherAPI, err := mockserver.New(mockserver.Options{APIKey: "test-key", Logger: quietLogger(s.T())})
	s.Require().NoError(err)
	s.server = httptest.NewServer(weatherAPI.Handler())
	s.dir = s.T().TempDir()
	s.out = &bytes.Buffer{}

	app, err := NewApplication(testConfig(s.server.URL, s.dir), Options{Logger: quietLogger(s.T()), Out: s.out, Verbose: true})
	s.Require().NoError(err)
	s.app = app
}

func (s *ApplicationTestSuite) TearDownTest() {
	s.NoError(s.app.Shutdown())
	s.server.Close()
}

func (s *ApplicationTestSuite) TestRun_Outcomes() {
	report, err := s.app.Run(context.Background())
	s.Require().NoError(err)

	expected := map[string]harness.Outcome{
		"weather_by_city_ok":                       harness.OutcomePassed,
		"forecast_by_city_ok":                      harness.OutcomePassed,
		"weather_missing_api_key":                  harness.OutcomePassed,
		"weather_unknown_city":                     harness.OutcomePassed,
		"weather_missing_city":                     harness.OutcomePassed,
		"forecast_unknown_city_returns_empty_list": harness.OutcomeExpectedFailure,
		"onecall_current_and_daily":                harness.OutcomeSkipped,
		demo.ErrorScenarioName:                     harness.OutcomeErrored,
		demo.FlakyScenarioName:                     harness.OutcomeRerunPassed,
	}
	s.Require().Len(report.Results, len(expected))
	for name, outcome := range expected {
		res, ok := report.Result(name)
		s.Require().True(ok, name)
		s.Equal(outcome, res.Outcome, name)
	}

	s.Equal("weather_by_city_ok", report.Results[0].Name)
	s.Equal(demo.FlakyScenarioName, report.Results[len(report.Results)-1].Name)
	s.True(report.Failed())

	xfail, _ := report.Result("forecast_unknown_city_returns_empty_list")
	s.Equal(404, xfail.StatusCode)
	s.Contains(xfail.Message, "Expected 200, got 404: city not found")
}

func (s *ApplicationTestSuite) TestRun_PublishesEverywhere() {
	report, err := s.app.Run(context.Background())
	s.Require().NoError(err)

	console := s.out.String()
	s.Contains(console, "PASSED         weather_by_city_ok")
	s.Contains(console, "1 error")

	stored, err := s.app.FindRun(context.Background(), report.RunID)
	s.Require().NoError(err)
	s.Len(stored.Results, len(report.Results))

	runs, err := s.app.RecentRuns(context.Background(), 5)
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.True(runs[0].Failed)

	metrics, err := os.ReadFile(filepath.Join(s.dir, "contract.prom"))
	s.Require().NoError(err)
	s.Contains(string(metrics), `contract_scenarios_total{outcome="passed"} 5`)
	s.Contains(string(metrics), `contract_attempts_total{scenario="test_flaky_rerun_demo"} 2`)

	f, err := excelize.OpenFile(filepath.Join(s.dir, "report.xlsx"))
	s.Require().NoError(err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Results")
	s.Require().NoError(err)
	s.Len(rows, len(report.Results)+1)
}

func (s *ApplicationTestSuite) TestRun_FlakyCounterIsPerRun() {
	first, err := s.app.Run(context.Background())
	s.Require().NoError(err)
	second, err := s.app.Run(context.Background())
	s.Require().NoError(err)

	for _, report := range []*harness.Report{first, second} {
		res, ok := report.Result(demo.FlakyScenarioName)
		s.Require().True(ok)
		s.Equal(harness.OutcomeRerunPassed, res.Outcome)
	}
	s.NotEqual(first.RunID, second.RunID)

	// The flaky count of a finished run is released, so the key starts over.
	n, err := s.app.deps.HarnessPorts().AttemptCounter.Increment(context.Background(), demo.FlakyKey(first.RunID))
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *ApplicationTestSuite) TestRun_FaultyCasesError() {
	casesFile := filepath.Join(s.dir, "faulty_cases.json")
	s.Require().NoError(os.WriteFile(casesFile, []byte(`[
  {"name": "weather_schema_file_missing", "endpoint": "/weather?q=London&appid=test-key", "method": "GET", "expected_status": 200, "schema": "no_such_schema.json"},
  {"name": "weather_body_malformed", "endpoint": "/broken", "method": "GET", "expected_status": 200, "schema": "weather_schema.json"}
]`), 0o600))

	cfg := testConfig(s.server.URL, s.dir)
	cfg.Cases.File = casesFile
	cfg.Execution.IncludeDemos = false
	cfg.Results.Store = config.StoreTypeNone
	cfg.Report = config.ReportConfig{}

	app, err := NewApplication(cfg, Options{Logger: quietLogger(s.T()), Out: &bytes.Buffer{}})
	s.Require().NoError(err)
	defer func() { _ = app.Shutdown() }()

	report, err := app.Run(context.Background())
	s.Require().NoError(err)
	s.True(report.Failed())

	missing, ok := report.Result("weather_schema_file_missing")
	s.Require().True(ok)
	s.Equal(harness.OutcomeErrored, missing.Outcome)
	s.Equal(200, missing.StatusCode)
	s.Contains(missing.Message, "RESOURCE_ERROR: schema no_such_schema.json not found")

	malformed, ok := report.Result("weather_body_malformed")
	s.Require().True(ok)
	s.Equal(harness.OutcomeErrored, malformed.Outcome)
	s.Equal(200, malformed.StatusCode)
	s.Contains(malformed.Message, "DECODE_ERROR: response body is not valid JSON")
}

func (s *ApplicationTestSuite) TestCases() {
	cases, err := s.app.Cases(context.Background())
	s.Require().NoError(err)
	s.Len(cases, 7)
}

func TestApplicationTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationTestSuite))
}

func TestRun_WithoutDemosPasses(t *testing.T) {
	weatherAPI, err := mockserver.New(mockserver.Options{Logger: quietLogger(t)})
	require.NoError(t, err)
	server := httptest.NewServer(weatherAPI.Handler())
	defer server.Close()

	cfg := testConfig(server.URL, t.TempDir())
	cfg.Execution.IncludeDemos = false
	cfg.Results.Store = config.StoreTypeNone
	cfg.Report = config.ReportConfig{}

	app, err := NewApplication(cfg, Options{Logger: quietLogger(t), Out: &bytes.Buffer{}})
	require.NoError(t, err)
	defer func() { _ = app.Shutdown() }()

	report, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())

	_, err = app.RecentRuns(context.Background(), 1)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestRun_CaseLoadFailure(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", t.TempDir())
	cfg.Cases.File = filepath.Join(t.TempDir(), "missing.json")
	cfg.Results.Store = config.StoreTypeNone

	app, err := NewApplication(cfg, Options{Logger: quietLogger(t), Out: &bytes.Buffer{}})
	require.NoError(t, err)

	report, err := app.Run(context.Background())

	assert.Nil(t, report)
	assert.True(t, errors.IsResourceError(err))
}

func TestNewApplication_Validation(t *testing.T) {
	_, err := NewApplication(nil, Options{Logger: quietLogger(t)})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewApplication(testConfig("http://localhost", t.TempDir()), Options{})
	assert.True(t, errors.IsValidationError(err))
}
