package main

import (
	"github.com/spf13/cobra"
)

// newMetricsCmd lists the evaluation metrics the hub knows about.
func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List evaluation metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := buildClient().ListMetrics(cmd.Context())
			if err != nil {
				return err
			}
			return newResultsWriter(cmd.OutOrStdout()).printMetrics(metrics)
		},
	}
}
