package ports

// HarnessPorts aggregates the ports the contract harness is wired with
type HarnessPorts struct {
	// Checking
	HTTPClient      HTTPClient
	SchemaValidator SchemaValidator

	// Scenario state
	AttemptCounter AttemptCounter

	// Observability
	Metrics MetricsRecorder
	Logger  Logger
}
