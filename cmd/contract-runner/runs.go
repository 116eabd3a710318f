package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"weathercontract.app/internal/adapters/reporter"
	"weathercontract.app/internal/app"
)

func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored runs, or show one run in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cfg, app.Options{Logger: log, Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer func() { _ = application.Shutdown() }()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				report, err := application.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				console := reporter.NewConsoleReporter(out, true)
				for _, res := range report.Results {
					console.OnResult(cmd.Context(), report.RunID, res)
				}
				return console.Write(report)
			}

			runs, err := application.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID\tSTARTED\tDURATION\tTOTAL\tRESULT")
			for _, r := range runs {
				result := "passed"
				if r.Failed {
					result = "failed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Duration.Round(time.Millisecond), r.Total, result)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
