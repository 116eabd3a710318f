package ports

import (
	"net/http"
	"time"
)

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// HTTPClient is the outbound transport used to issue case requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MetricsRecorder defines the contract for run metrics collection
type MetricsRecorder interface {
	RecordRequest(method string, statusCode int, elapsed time.Duration)
	RecordAttempt(scenario string)
	RecordOutcome(outcome string)
}
