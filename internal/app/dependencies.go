package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weathercontract.app/internal/adapters/cases"
	"weathercontract.app/internal/adapters/counter"
	"weathercontract.app/internal/adapters/database"
	"weathercontract.app/internal/adapters/infrastructure"
	"weathercontract.app/internal/adapters/schema"
	"weathercontract.app/internal/config"
	"weathercontract.app/internal/core/contract"
	"weathercontract.app/internal/core/harness"
	"weathercontract.app/internal/ports"
)

// CaseSource provides the ordered case list of a run
type CaseSource interface {
	Load(ctx context.Context) ([]contract.Case, error)
}

// ReportRepository persists run reports
type ReportRepository interface {
	SaveReport(ctx context.Context, report *harness.Report) error
	FindRun(ctx context.Context, runID string) (*harness.Report, error)
	ListRecentRuns(ctx context.Context, limit int) ([]harness.RunSummary, error)
}

type DependencyContainer struct {
	config  *config.Config
	ports   *ports.HarnessPorts
	metrics *infrastructure.PrometheusMetrics
	cases   CaseSource
	reports ReportRepository
	closers []func() error
}

// NewDependencyContainer builds every adapter the configuration asks for.
// On failure anything already opened is closed again.
func NewDependencyContainer(cfg *config.Config, logger ports.Logger) (*DependencyContainer, error) {
	c := &DependencyContainer{config: cfg}

	if err := c.initializePorts(logger); err != nil {
		_ = c.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := c.initializeStorage(logger); err != nil {
		_ = c.Cleanup()
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	return c, nil
}

func (c *DependencyContainer) initializePorts(logger ports.Logger) error {
	logger.Debug("Initializing harness ports")

	httpClient := &http.Client{
		Timeout: time.Duration(c.config.Target.HTTPTimeout) * time.Second,
	}

	schemas, err := schema.NewFileStore(schema.FileStoreParams{
		Dir:    c.config.Cases.SchemaDir,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create schema store: %w", err)
	}

	attemptCounter, err := counter.New(&c.config.Counter)
	if err != nil {
		return fmt.Errorf("create attempt counter: %w", err)
	}
	if closer, ok := attemptCounter.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}
	logger.Info("Attempt counter initialized", ports.F("type", c.config.Counter.Type.String()))

	caseSource, err := cases.NewFileCaseSource(cases.FileCaseSourceParams{
		Path:   c.config.Cases.File,
		Sheet:  c.config.Cases.Sheet,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create case source: %w", err)
	}
	c.cases = caseSource

	c.metrics = infrastructure.NewPrometheusMetrics()

	c.ports = &ports.HarnessPorts{
		HTTPClient:      httpClient,
		SchemaValidator: schemas,
		AttemptCounter:  attemptCounter,
		Metrics:         c.metrics,
		Logger:          logger,
	}
	return nil
}

func (c *DependencyContainer) initializeStorage(logger ports.Logger) error {
	db, err := database.Open(&c.config.Results)
	if err != nil {
		return err
	}
	if db == nil {
		logger.Debug("Result persistence disabled")
		return nil
	}

	c.reports = database.NewReportRepositoryAdapter(db)
	c.closers = append(c.closers, func() error { return database.Close(db) })
	logger.Info("Result store initialized", ports.F("store", c.config.Results.Store.String()))
	return nil
}

func (c *DependencyContainer) HarnessPorts() *ports.HarnessPorts {
	return c.ports
}

func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetrics {
	return c.metrics
}

func (c *DependencyContainer) Cases() CaseSource {
	return c.cases
}

// Reports returns nil when results are not persisted
func (c *DependencyContainer) Reports() ReportRepository {
	return c.reports
}

// Cleanup releases connections in reverse order of creation
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
