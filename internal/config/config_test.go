package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathercontract.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Target.BaseURL)
		assert.Equal(t, 0, config.Target.HTTPTimeout)
		assert.Equal(t, "testdata/cases/test_data.json", config.Cases.File)
		assert.Equal(t, "Sheet1", config.Cases.Sheet)
		assert.Equal(t, "testdata/schemas", config.Cases.SchemaDir)
		assert.True(t, config.Execution.IncludeDemos)
		assert.Equal(t, 1, config.Execution.FlakyReruns)
		assert.Equal(t, 500, config.Execution.FlakyRerunDelayMS)
		assert.Equal(t, CounterTypeMemory, config.Counter.Type)
		assert.Equal(t, "localhost:6379", config.Counter.Redis.Addr)
		assert.Equal(t, StoreTypeNone, config.Results.Store)
		assert.Equal(t, "contract_results.db", config.Results.SQLitePath)
		assert.Empty(t, config.Report.XLSXPath)
		assert.Equal(t, "info", config.Log.Level)
		assert.Equal(t, "json", config.Log.Format)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("CONTRACT_BASE_URL", "http://localhost:8081"))
		require.NoError(t, os.Setenv("CONTRACT_HTTP_TIMEOUT", "15"))
		require.NoError(t, os.Setenv("CONTRACT_CASES_FILE", "cases.yaml"))
		require.NoError(t, os.Setenv("CONTRACT_SCHEMA_DIR", "schemas"))
		require.NoError(t, os.Setenv("CONTRACT_INCLUDE_DEMOS", "false"))
		require.NoError(t, os.Setenv("CONTRACT_FLAKY_RERUNS", "2"))
		require.NoError(t, os.Setenv("COUNTER_TYPE", "redis"))
		require.NoError(t, os.Setenv("REDIS_ADDR", "redis:6379"))
		require.NoError(t, os.Setenv("RESULTS_STORE", "postgres"))
		require.NoError(t, os.Setenv("DB_HOST", "db"))
		require.NoError(t, os.Setenv("REPORT_XLSX_PATH", "report.xlsx"))
		require.NoError(t, os.Setenv("LOG_FORMAT", "text"))
		require.NoError(t, os.Setenv("LOG_LEVEL", "debug"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8081", config.Target.BaseURL)
		assert.Equal(t, 15, config.Target.HTTPTimeout)
		assert.Equal(t, "cases.yaml", config.Cases.File)
		assert.Equal(t, "schemas", config.Cases.SchemaDir)
		assert.False(t, config.Execution.IncludeDemos)
		assert.Equal(t, 2, config.Execution.FlakyReruns)
		assert.Equal(t, CounterTypeRedis, config.Counter.Type)
		assert.Equal(t, "redis:6379", config.Counter.Redis.Addr)
		assert.Equal(t, StoreTypePostgres, config.Results.Store)
		assert.Equal(t, "db", config.Results.Database.Host)
		assert.Equal(t, "report.xlsx", config.Report.XLSXPath)
		assert.Equal(t, "text", config.Log.Format)
	})

	t.Run("InvalidCounterType", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("COUNTER_TYPE", "memcached"))

		config, err := LoadConfig()

		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "COUNTER_TYPE must be one of")
	})

	t.Run("InvalidBaseURL", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CONTRACT_BASE_URL", "ftp://example.com"))

		_, err := LoadConfig()

		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("MalformedNumber", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CONTRACT_FLAKY_RERUNS", "many"))

		_, err := LoadConfig()

		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"NegativeTimeout", func(c *Config) { c.Target.HTTPTimeout = -1 }, "CONTRACT_HTTP_TIMEOUT"},
		{"EmptyCasesFile", func(c *Config) { c.Cases.File = " " }, "CONTRACT_CASES_FILE"},
		{"EmptySchemaDir", func(c *Config) { c.Cases.SchemaDir = "" }, "CONTRACT_SCHEMA_DIR"},
		{"TooManyReruns", func(c *Config) { c.Execution.FlakyReruns = 11 }, "CONTRACT_FLAKY_RERUNS"},
		{"NegativeDelay", func(c *Config) { c.Execution.FlakyRerunDelayMS = -5 }, "CONTRACT_FLAKY_RERUN_DELAY_MS"},
		{"RedisEmptyAddr", func(c *Config) {
			c.Counter.Type = CounterTypeRedis
			c.Counter.Redis.Addr = ""
		}, "REDIS_ADDR"},
		{"RedisBadDB", func(c *Config) {
			c.Counter.Type = CounterTypeRedis
			c.Counter.Redis.DB = 16
		}, "REDIS_DB"},
		{"UnknownStore", func(c *Config) { c.Results.Store = StoreTypeUnknown }, "RESULTS_STORE"},
		{"SQLiteNoPath", func(c *Config) {
			c.Results.Store = StoreTypeSQLite
			c.Results.SQLitePath = ""
		}, "RESULTS_SQLITE_PATH"},
		{"PostgresBadSSL", func(c *Config) {
			c.Results.Store = StoreTypePostgres
			c.Results.Database.SSLMode = "prefer"
		}, "DB_SSL_MODE"},
		{"BadLogFormat", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "trace" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()

			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestEnumParsing(t *testing.T) {
	assert.Equal(t, CounterTypeRedis, CounterTypeFromString("REDIS"))
	assert.Equal(t, CounterTypeUnknown, CounterTypeFromString("disk"))
	assert.Equal(t, StoreTypeNone, StoreTypeFromString(""))
	assert.Equal(t, StoreTypeSQLite, StoreTypeFromString("sqlite"))
	assert.Equal(t, StoreTypeUnknown, StoreTypeFromString("mysql"))

	text, err := CounterTypeMemory.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "memory", string(text))

	var store StoreType
	require.NoError(t, store.UnmarshalText([]byte("postgres")))
	assert.Equal(t, StoreTypePostgres, store)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", db.GetDSN())
}

func validConfig() *Config {
	return &Config{
		Target:    TargetConfig{BaseURL: "http://localhost:8081"},
		Cases:     CasesConfig{File: "cases.json", Sheet: "Sheet1", SchemaDir: "schemas"},
		Execution: ExecutionConfig{IncludeDemos: true, FlakyReruns: 1, FlakyRerunDelayMS: 500},
		Counter: CounterConfig{
			Type: CounterTypeMemory,
			Redis: RedisConfig{
				Addr: "localhost:6379", DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3, KeyTTL: 60,
			},
		},
		Results: ResultsConfig{
			Store:      StoreTypeNone,
			SQLitePath: "results.db",
			Database: DatabaseConfig{
				Host: "localhost", Port: 5432, User: "postgres", Name: "contract_results", SSLMode: "disable",
			},
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}
