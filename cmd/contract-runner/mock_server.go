package main

import (
	"github.com/spf13/cobra"
	"weathercontract.app/internal/adapters/mockserver"
)

func newMockServerCmd() *cobra.Command {
	var (
		addr   string
		apiKey string
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve a local stand-in for the weather API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}

			server, err := mockserver.New(mockserver.Options{APIKey: apiKey, Logger: log})
			if err != nil {
				return err
			}
			return server.Start(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8081", "Listen address")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Only accept this appid (any non-empty appid when unset)")
	return cmd
}
