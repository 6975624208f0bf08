package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weekplan/internal/models"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage planning weeks",
}

var weekNewCmd = &cobra.Command{
	Use:   "new <start-date>",
	Short: "Create a week starting on a date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		start, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid start date %q, use YYYY-MM-DD", args[0])
		}

		stores := buildStores(cfg, log)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		req := models.CreateWeekRequest{StartDate: start}
		if title, _ := cmd.Flags().GetString("title"); title != "" {
			req.Title = &title
		}

		week, err := stores.Weeks.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create week: %w", err)
		}

		fmt.Printf("Created %s (%s – %s)\n", week.ID,
			week.StartDate.Format("2006-01-02"), week.EndDate.Format("2006-01-02"))
		return nil
	},
}

var weekListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weeks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		stores := buildStores(cfg, log)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := stores.Weeks.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to fetch weeks: %w", err)
		}

		for _, w := range stores.Weeks.Items() {
			marker := " "
			if w.IsCurrentWeek {
				marker = "*"
			}
			title := ""
			if w.Title != nil {
				title = *w.Title
			}
			fmt.Printf("%s %-10s %s – %s  planned %dm  tracked %dm  %s\n",
				marker, w.ID,
				w.StartDate.Format("2006-01-02"), w.EndDate.Format("2006-01-02"),
				w.TotalPlannedMinutes, w.TotalActualMinutes, title)
		}
		return nil
	},
}

func init() {
	weekNewCmd.Flags().String("title", "", "Optional week title")
	weekCmd.AddCommand(weekNewCmd, weekListCmd)
}
