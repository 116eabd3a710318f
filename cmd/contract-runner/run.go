package main

import (
	"github.com/spf13/cobra"
	"weathercontract.app/internal/app"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute every case and demo scenario and report the outcome",
		Long: `Load the configured case list, check each case against CONTRACT_BASE_URL and
report the results. The command exits with status 1 when any scenario failed,
errored or passed unexpectedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cfg, app.Options{
				Logger:  log,
				Out:     cmd.OutOrStdout(),
				Verbose: verbose,
			})
			if err != nil {
				return err
			}
			defer func() { _ = application.Shutdown() }()

			report, err := application.Run(cmd.Context())
			if err != nil {
				return err
			}
			if report.Failed() {
				return errRunFailed
			}
			return nil
		},
	}
}
