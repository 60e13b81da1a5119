// Package client contains Cobra CLI commands for epochline.
package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/epochline/epochline/internal/timeline"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewEventsCommand constructs the `events` command group and subcommands.
func NewEventsCommand(baseURL BaseURLFunc) *cobra.Command {
	eventsCmd := &cobra.Command{Use: "events", Short: "Timeline event operations"}

	eventsCmd.AddCommand(
		newEventsListCommand(baseURL),
		newEventsCreateCommand(baseURL),
		newEventsUpdateCommand(baseURL),
		newEventsDeleteCommand(baseURL),
		newEventsHistoryCommand(baseURL),
	)

	return eventsCmd
}

// newEventsListCommand constructs the `events list` subcommand.
func newEventsListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List timeline events, newest year first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, _ := cmd.Flags().GetString("category")
			filter, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")

			q := url.Values{}
			if category != "" {
				q.Set("category", category)
			}
			if filter != "" {
				q.Set("filter", filter)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			u := baseURL() + "/v1/events/list"
			if len(q) > 0 {
				u += "?" + q.Encode()
			}

			var resp struct {
				Events []timeline.Event `json:"events"`
			}
			if err := doJSON(cmd.Context(), http.MethodGet, u, nil, &resp); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), resp.Events)
			return nil
		},
	}
	listCmd.Flags().StringP("category", "c", "", "Only events of this category")
	listCmd.Flags().String("filter", "", "CEL filter (server-side)")
	listCmd.Flags().Int("limit", 0, "Stop after N events (0 = all)")
	return listCmd
}

// newEventsCreateCommand constructs the `events create` subcommand.
func newEventsCreateCommand(baseURL BaseURLFunc) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a timeline event (owner only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, _ := cmd.Flags().GetInt("year")
			name, _ := cmd.Flags().GetString("name")
			category, _ := cmd.Flags().GetString("category")
			region, _ := cmd.Flags().GetString("region")
			description, _ := cmd.Flags().GetString("description")

			in := timeline.NewEvent{
				Year:        year,
				Name:        name,
				Category:    timeline.Category(category),
				Region:      region,
				Description: description,
			}
			if cmd.Flags().Changed("end-year") {
				ey, _ := cmd.Flags().GetInt("end-year")
				in.EndYear = &ey
			}

			var ev timeline.Event
			if err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/events/create", in, &ev); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), ev)
			return nil
		},
	}
	createCmd.Flags().Int("year", 0, "Start year (negative = BCE)")
	createCmd.Flags().String("name", "", "Event name")
	createCmd.Flags().StringP("category", "c", "", "Category: invention|event|person|discovery|civilization")
	createCmd.Flags().Int("end-year", 0, "End year")
	createCmd.Flags().String("region", "", "Region")
	createCmd.Flags().String("description", "", "Description")
	return createCmd
}

// newEventsUpdateCommand constructs the `events update` subcommand. Only
// flags the caller actually set end up in the patch.
func newEventsUpdateCommand(baseURL BaseURLFunc) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Patch a timeline event (owner only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}

			var patch timeline.Patch
			if cmd.Flags().Changed("year") {
				v, _ := cmd.Flags().GetInt("year")
				patch.Year = &v
			}
			if cmd.Flags().Changed("name") {
				v, _ := cmd.Flags().GetString("name")
				patch.Name = &v
			}
			if cmd.Flags().Changed("category") {
				v, _ := cmd.Flags().GetString("category")
				c := timeline.Category(v)
				patch.Category = &c
			}
			if cmd.Flags().Changed("end-year") {
				v, _ := cmd.Flags().GetInt("end-year")
				patch.EndYear = &v
			}
			if cmd.Flags().Changed("region") {
				v, _ := cmd.Flags().GetString("region")
				patch.Region = &v
			}
			if cmd.Flags().Changed("description") {
				v, _ := cmd.Flags().GetString("description")
				patch.Description = &v
			}

			body := struct {
				ID    string         `json:"id"`
				Patch timeline.Patch `json:"patch"`
			}{ID: id, Patch: patch}

			var ev timeline.Event
			if err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/events/update", body, &ev); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), ev)
			return nil
		},
	}
	updateCmd.Flags().String("id", "", "Event id")
	updateCmd.Flags().Int("year", 0, "Start year")
	updateCmd.Flags().String("name", "", "Event name")
	updateCmd.Flags().StringP("category", "c", "", "Category")
	updateCmd.Flags().Int("end-year", 0, "End year")
	updateCmd.Flags().String("region", "", "Region")
	updateCmd.Flags().String("description", "", "Description")
	return updateCmd
}

// newEventsDeleteCommand constructs the `events delete` subcommand.
func newEventsDeleteCommand(baseURL BaseURLFunc) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a timeline event (owner only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				return fmt.Errorf("--id is required")
			}
			body := struct {
				ID string `json:"id"`
			}{ID: id}
			if err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/events/delete", body, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	deleteCmd.Flags().String("id", "", "Event id")
	return deleteCmd
}

// newEventsHistoryCommand constructs the `events history` subcommand.
func newEventsHistoryCommand(baseURL BaseURLFunc) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent mutations from the audit trail (owner only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			u := baseURL() + "/v1/audit/list"
			if limit > 0 {
				u += "?limit=" + strconv.Itoa(limit)
			}
			var resp struct {
				Entries []map[string]any `json:"entries"`
			}
			if err := doJSON(cmd.Context(), http.MethodGet, u, nil, &resp); err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), resp.Entries)
			return nil
		},
	}
	historyCmd.Flags().Int("limit", 0, "Stop after N entries (0 = server default)")
	return historyCmd
}
