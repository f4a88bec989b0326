package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"activity-signup/internal/activities"
	apiclient "activity-signup/internal/common/http"
	"activity-signup/internal/models"
)

var catalogPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog-tool",
		Short:         "Maintain activity catalog files",
		Long:          "catalog-tool creates, edits and validates the JSON catalog the activity server seeds from.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "path", "configs/catalog.json", "Path to the catalog file")

	root.AddCommand(newValidateCmd(), newAddCmd(), newUpdateCmd(), newExportCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := activities.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}
			if _, err := activities.NewRegistry(catalog, activities.Options{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog validation passed. Found %d activities.\n", len(catalog))
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var (
		name        string
		description string
		schedule    string
		maxSize     int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || description == "" || schedule == "" {
				return errors.New("name, description and schedule are required")
			}
			if maxSize < 0 {
				return errors.New("max must not be negative")
			}

			catalog, err := loadOrEmpty(catalogPath)
			if err != nil {
				return err
			}
			for _, a := range catalog {
				if a.Name == name {
					return fmt.Errorf("activity %q already exists", name)
				}
			}

			catalog = append(catalog, models.Activity{
				Name:            name,
				Description:     description,
				Schedule:        schedule,
				MaxParticipants: maxSize,
			})
			if err := activities.SaveCatalog(catalogPath, catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Activity name (e.g. Chess Club)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Schedule (e.g. Fridays, 3:30 PM - 5:00 PM)")
	cmd.Flags().IntVar(&maxSize, "max", 0, "Maximum number of participants")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var name, field, value string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || field == "" {
				return errors.New("name and field are required")
			}

			catalog, err := activities.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}

			idx := -1
			for i := range catalog {
				if catalog[i].Name == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("activity %q not found", name)
			}

			switch field {
			case "description":
				catalog[idx].Description = value
			case "schedule":
				catalog[idx].Schedule = value
			case "max_participants":
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 {
					return fmt.Errorf("invalid max_participants value %q", value)
				}
				if n < len(catalog[idx].Participants) {
					return fmt.Errorf("max_participants %d is below the current roster of %d", n, len(catalog[idx].Participants))
				}
				catalog[idx].MaxParticipants = n
			default:
				return fmt.Errorf("unknown field: %s", field)
			}

			if err := activities.SaveCatalog(catalogPath, catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", name, field, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Activity name")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (description, schedule, max_participants)")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the live rosters of a running server to the catalog file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			views, err := apiclient.NewClient(server, timeout).ListActivities(ctx)
			if err != nil {
				return err
			}
			catalog := activities.FromViews(views)
			if err := activities.SaveCatalog(catalogPath, catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", len(catalog), catalogPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8000", "Base URL of the activity server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}

func loadOrEmpty(path string) ([]models.Activity, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return activities.LoadCatalog(path)
}
