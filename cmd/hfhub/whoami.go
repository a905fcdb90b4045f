package main

import (
	"github.com/spf13/cobra"
)

// newWhoamiCmd reports which user the configured token belongs to.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := buildClient().Whoami(cmd.Context())
			if err != nil {
				return err
			}
			return newResultsWriter(cmd.OutOrStdout()).printUser(user)
		},
	}
}
