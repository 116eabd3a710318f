package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"weathercontract.app/internal/adapters/reporter"
	"weathercontract.app/internal/config"
	"weathercontract.app/internal/core/contract"
	"weathercontract.app/internal/core/demo"
	"weathercontract.app/internal/core/harness"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/errors"
)

// ReportWriter renders a finished run somewhere
type ReportWriter interface {
	Write(report *harness.Report) error
}

// Options tunes how the application reports
type Options struct {
	Logger ports.Logger
	// Out receives the console report; defaults to os.Stdout.
	Out io.Writer
	// Verbose prints a line for every scenario, not only problems.
	Verbose bool
}

type Application struct {
	config *config.Config
	deps   *DependencyContainer
	logger ports.Logger

	// Use Cases
	contractUseCase *contract.UseCase
	harnessUseCase  *harness.UseCase
	demoUseCase     *demo.UseCase

	// Reporting
	console *reporter.ConsoleReporter
	writers []ReportWriter

	newRunID func() string
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("config cannot be nil", nil)
	}
	if opts.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	deps, err := NewDependencyContainer(cfg, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config:   cfg,
		deps:     deps,
		logger:   opts.Logger,
		console:  reporter.NewConsoleReporter(out, opts.Verbose),
		newRunID: uuid.NewString,
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeReporters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize reporters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	p := a.deps.HarnessPorts()

	contractUseCase, err := contract.NewUseCase(contract.UseCaseDependencies{
		BaseURL:         a.config.Target.BaseURL,
		HTTPClient:      p.HTTPClient,
		SchemaValidator: p.SchemaValidator,
		Metrics:         p.Metrics,
		Logger:          p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create contract use case: %w", err)
	}
	a.contractUseCase = contractUseCase

	harnessUseCase, err := harness.NewUseCase(harness.UseCaseDependencies{
		Logger:    p.Logger,
		Metrics:   p.Metrics,
		Observers: []harness.Observer{a.console},
	})
	if err != nil {
		return fmt.Errorf("create harness use case: %w", err)
	}
	a.harnessUseCase = harnessUseCase

	demoUseCase, err := demo.NewUseCase(demo.UseCaseDependencies{
		Counter:    p.AttemptCounter,
		Reruns:     a.config.Execution.FlakyReruns,
		RerunDelay: time.Duration(a.config.Execution.FlakyRerunDelayMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("create demo use case: %w", err)
	}
	a.demoUseCase = demoUseCase

	return nil
}

func (a *Application) initializeReporters() error {
	a.writers = []ReportWriter{a.console}

	if path := a.config.Report.XLSXPath; path != "" {
		xlsx, err := reporter.NewXLSXReporter(path, a.logger)
		if err != nil {
			return err
		}
		a.writers = append(a.writers, xlsx)
	}

	return nil
}

// Run loads the cases, executes every scenario and reports the outcome. The
// report is returned whenever scenarios ran, even if a later reporting step
// failed; callers decide the exit status from report.Failed().
func (a *Application) Run(ctx context.Context) (*harness.Report, error) {
	runID := a.newRunID()
	a.logger.Info("Starting contract run",
		ports.F("run_id", runID),
		ports.F("base_url", a.config.Target.BaseURL),
		ports.F("cases_file", a.config.Cases.File))

	loaded, err := a.deps.Cases().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}

	scenarios := harness.CaseScenarios(loaded, a.contractUseCase)
	if a.config.Execution.IncludeDemos {
		scenarios = append(scenarios, a.demoUseCase.Scenarios(runID)...)
	}

	report, runErr := a.harnessUseCase.RunAll(ctx, runID, scenarios)
	if a.config.Execution.IncludeDemos {
		a.releaseRun(context.WithoutCancel(ctx), runID)
	}
	if report == nil {
		return nil, runErr
	}

	if err := a.publish(ctx, report); err != nil && runErr == nil {
		runErr = err
	}

	a.logger.Info("Contract run finished",
		ports.F("run_id", runID),
		ports.F("failed", report.Failed()),
		ports.F("duration_ms", report.Duration.Milliseconds()))
	return report, runErr
}

// releaseRun drops the run's flaky attempt count
func (a *Application) releaseRun(ctx context.Context, runID string) {
	if err := a.demoUseCase.Release(ctx, runID); err != nil {
		a.logger.Warn("Failed to release attempt counter", ports.F("run_id", runID), ports.F("error", err))
	}
}

// publish runs every output step and returns the first error
func (a *Application) publish(ctx context.Context, report *harness.Report) error {
	var firstErr error
	keep := func(step string, err error) {
		if err == nil {
			return
		}
		a.logger.Error("Report step failed", ports.F("step", step), ports.F("error", err))
		if firstErr == nil {
			firstErr = err
		}
	}

	if repo := a.deps.Reports(); repo != nil {
		keep("persist", repo.SaveReport(ctx, report))
	}

	if path := a.config.Report.MetricsTextfile; path != "" {
		keep("metrics", a.deps.Metrics().WriteTextfile(path))
	}

	for _, w := range a.writers {
		keep("report", w.Write(report))
	}

	return firstErr
}

// Cases loads and validates the configured case list without running it
func (a *Application) Cases(ctx context.Context) ([]contract.Case, error) {
	return a.deps.Cases().Load(ctx)
}

// RecentRuns lists stored runs, newest first
func (a *Application) RecentRuns(ctx context.Context, limit int) ([]harness.RunSummary, error) {
	repo := a.deps.Reports()
	if repo == nil {
		return nil, errors.NewConfigurationError("RESULTS_STORE is none; no runs are stored", nil)
	}
	return repo.ListRecentRuns(ctx, limit)
}

// FindRun loads a stored run
func (a *Application) FindRun(ctx context.Context, runID string) (*harness.Report, error) {
	repo := a.deps.Reports()
	if repo == nil {
		return nil, errors.NewConfigurationError("RESULTS_STORE is none; no runs are stored", nil)
	}
	return repo.FindRun(ctx, runID)
}

// Shutdown releases adapters
func (a *Application) Shutdown() error {
	a.logger.Debug("Shutting down application")
	return a.deps.Cleanup()
}
