package client

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the epochline client.
// It registers the events command group and the seed command.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "epochline",
		Short: "Epochline client commands",
	}
	root.AddCommand(NewEventsCommand(baseURL))
	root.AddCommand(NewSeedCommand(baseURL))
	return root
}

// NewSeedCommand constructs the `seed` command. It writes the starter
// document and fails when the remote document already exists.
func NewSeedCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the starter timeline document (owner only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/events/seed", nil, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}
