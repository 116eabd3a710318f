package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"weathercontract.app/internal/app"
)

func newCasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "Load and validate the case list without running it",
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

			loaded, err := application.Cases(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tENDPOINT\tSTATUS\tSCHEMA\tMARK")
			for _, c := range loaded {
				mark := "-"
				if c.Modifier != nil {
					mark = fmt.Sprintf("%s (%s)", c.Modifier.Kind, c.Modifier.Reason)
				}
				schema := c.Schema
				if schema == "" {
					schema = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", c.Name, c.Method, c.Endpoint, c.ExpectedStatus, schema, mark)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d cases OK\n", len(loaded))
			return nil
		},
	}
}
