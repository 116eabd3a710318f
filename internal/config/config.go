package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weathercontract.app/pkg/errors"
)

const (
	maxRedisDB     = 15
	maxPortNumber  = 65535
	maxReruns      = 10
	maxHTTPTimeout = 600
)

// Config represents the harness configuration structure
type Config struct {
	Target    TargetConfig    `split_words:"true"`
	Cases     CasesConfig     `split_words:"true"`
	Execution ExecutionConfig `split_words:"true"`
	Counter   CounterConfig   `split_words:"true"`
	Results   ResultsConfig   `split_words:"true"`
	Report    ReportConfig    `split_words:"true"`
	Log       LogConfig       `split_words:"true"`
}

type TargetConfig struct {
	BaseURL string `envconfig:"CONTRACT_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	// HTTPTimeout is in seconds; 0 leaves the client without a timeout.
	HTTPTimeout int `envconfig:"CONTRACT_HTTP_TIMEOUT" default:"0"`
}

type CasesConfig struct {
	File      string `envconfig:"CONTRACT_CASES_FILE" default:"testdata/cases/test_data.json"`
	Sheet     string `envconfig:"CONTRACT_CASES_SHEET" default:"Sheet1"`
	SchemaDir string `envconfig:"CONTRACT_SCHEMA_DIR" default:"testdata/schemas"`
}

type ExecutionConfig struct {
	IncludeDemos      bool `envconfig:"CONTRACT_INCLUDE_DEMOS" default:"true"`
	FlakyReruns       int  `envconfig:"CONTRACT_FLAKY_RERUNS" default:"1"`
	FlakyRerunDelayMS int  `envconfig:"CONTRACT_FLAKY_RERUN_DELAY_MS" default:"500"`
}

// CounterType represents where the flaky attempt counter lives
type CounterType int

const (
	CounterTypeUnknown CounterType = iota
	CounterTypeMemory
	CounterTypeRedis
)

// String returns the string representation of counter type
func (c CounterType) String() string {
	switch c {
	case CounterTypeMemory:
		return "memory"
	case CounterTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the counter type is valid
func (c CounterType) IsValid() bool {
	return c == CounterTypeMemory || c == CounterTypeRedis
}

// CounterTypeFromString converts string to CounterType enum
func CounterTypeFromString(s string) CounterType {
	switch strings.ToLower(s) {
	case "memory":
		return CounterTypeMemory
	case "redis":
		return CounterTypeRedis
	default:
		return CounterTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CounterType) UnmarshalText(text []byte) error {
	*c = CounterTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CounterType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CounterConfig struct {
	Type  CounterType `envconfig:"COUNTER_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	KeyTTL       int    `envconfig:"REDIS_KEY_TTL" default:"3600"`
}

// StoreType represents where run results are persisted
type StoreType int

const (
	StoreTypeUnknown StoreType = iota
	StoreTypeNone
	StoreTypeSQLite
	StoreTypePostgres
)

func (s StoreType) String() string {
	switch s {
	case StoreTypeNone:
		return "none"
	case StoreTypeSQLite:
		return "sqlite"
	case StoreTypePostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

func (s StoreType) IsValid() bool {
	return s == StoreTypeNone || s == StoreTypeSQLite || s == StoreTypePostgres
}

func StoreTypeFromString(s string) StoreType {
	switch strings.ToLower(s) {
	case "none", "":
		return StoreTypeNone
	case "sqlite":
		return StoreTypeSQLite
	case "postgres":
		return StoreTypePostgres
	default:
		return StoreTypeUnknown
	}
}

func (s *StoreType) UnmarshalText(text []byte) error {
	*s = StoreTypeFromString(string(text))
	return nil
}

func (s StoreType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ResultsConfig struct {
	Store      StoreType      `envconfig:"RESULTS_STORE" default:"none"`
	SQLitePath string         `envconfig:"RESULTS_SQLITE_PATH" default:"contract_results.db"`
	Database   DatabaseConfig `split_words:"true"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"contract_results"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type ReportConfig struct {
	XLSXPath        string `envconfig:"REPORT_XLSX_PATH"`
	MetricsTextfile string `envconfig:"REPORT_METRICS_TEXTFILE"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if err := c.Cases.Validate(); err != nil {
		return err
	}
	if err := c.Execution.Validate(); err != nil {
		return err
	}
	if err := c.Counter.Validate(); err != nil {
		return err
	}
	if err := c.Results.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func (t *TargetConfig) Validate() error {
	if t.BaseURL == "" {
		return errors.NewConfigurationError("CONTRACT_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(t.BaseURL, "http://") && !strings.HasPrefix(t.BaseURL, "https://") {
		return errors.NewConfigurationError("CONTRACT_BASE_URL must start with http:// or https://", nil)
	}
	if t.HTTPTimeout < 0 || t.HTTPTimeout > maxHTTPTimeout {
		return errors.NewConfigurationError("CONTRACT_HTTP_TIMEOUT must be between 0 and 600 seconds", nil)
	}
	return nil
}

func (c *CasesConfig) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.NewConfigurationError("CONTRACT_CASES_FILE cannot be empty", nil)
	}
	if strings.TrimSpace(c.SchemaDir) == "" {
		return errors.NewConfigurationError("CONTRACT_SCHEMA_DIR cannot be empty", nil)
	}
	return nil
}

func (e *ExecutionConfig) Validate() error {
	if e.FlakyReruns < 0 || e.FlakyReruns > maxReruns {
		return errors.NewConfigurationError("CONTRACT_FLAKY_RERUNS must be between 0 and 10", nil)
	}
	if e.FlakyRerunDelayMS < 0 {
		return errors.NewConfigurationError("CONTRACT_FLAKY_RERUN_DELAY_MS cannot be negative", nil)
	}
	return nil
}

func (c *CounterConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("COUNTER_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CounterTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using the Redis counter", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	if r.KeyTTL < 1 {
		return errors.NewConfigurationError("REDIS_KEY_TTL must be at least 1 second", nil)
	}
	return nil
}

func (r *ResultsConfig) Validate() error {
	switch r.Store {
	case StoreTypeNone:
		return nil
	case StoreTypeSQLite:
		if strings.TrimSpace(r.SQLitePath) == "" {
			return errors.NewConfigurationError("RESULTS_SQLITE_PATH cannot be empty when RESULTS_STORE=sqlite", nil)
		}
		return nil
	case StoreTypePostgres:
		return r.Database.Validate()
	default:
		return errors.NewConfigurationError("RESULTS_STORE must be one of: none, sqlite, postgres", nil)
	}
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return errors.NewConfigurationError("LOG_FORMAT must be one of: json, text", nil)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	return nil
}
