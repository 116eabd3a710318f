package counter

import (
	"fmt"

	"weathercontract.app/internal/config"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

// New creates the attempt counter selected by COUNTER_TYPE
func New(cfg *config.CounterConfig) (ports.AttemptCounter, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("counter config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CounterTypeMemory:
		return NewMemoryCounter(), nil
	case config.CounterTypeRedis:
		return NewRedisCounter(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported counter type: %s", cfg.Type.String()), nil)
	}
}
