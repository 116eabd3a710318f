// Command contract-runner checks a weather API against a data-driven list of
// HTTP contract cases.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"weathercontract.app/internal/adapters/infrastructure"
	"weathercontract.app/internal/config"
	"weathercontract.app/internal/ports"
	"weathercontract.app/pkg/logger"
)

var (
	version = "dev"

	envFile string
	verbose bool
)

// errRunFailed marks a completed run whose report contains problems
var errRunFailed = stderrors.New("contract run failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contract-runner",
		Short:         "Run HTTP contract checks against a weather API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv()
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before configuration")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a line for every scenario")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCasesCmd())
	root.AddCommand(newRunsCmd())
	root.AddCommand(newMockServerCmd())

	return root
}

func loadEnv() {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("No env file loaded", "path", envFile, "error", err)
	}
}

// setup loads configuration and installs the process logger, tagged with the
// subcommand being run
func setup(cmd *cobra.Command) (*config.Config, ports.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	l := logger.NewWithOptions(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Writer: os.Stderr,
	}).WithField("command", cmd.Name())
	slog.SetDefault(l.Logger)

	return cfg, infrastructure.NewSlogLoggerAdapter(l.Logger), nil
}
