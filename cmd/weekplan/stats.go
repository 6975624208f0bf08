package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"weekplan/internal/models"
	"weekplan/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats [week-id]",
	Short: "Print a week's reflection summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		stores := buildStores(cfg, log)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, refresh := range []func(context.Context) error{
			stores.Weeks.Refresh, stores.Tasks.Refresh, stores.Entries.Refresh,
		} {
			if err := refresh(ctx); err != nil {
				return fmt.Errorf("failed to fetch data: %w", err)
			}
		}

		var week models.Week
		if len(args) == 1 {
			w, ok := stores.Weeks.Get(args[0])
			if !ok {
				return fmt.Errorf("week %q not found", args[0])
			}
			week = w
		} else {
			w, ok := stores.Weeks.Current()
			if !ok {
				return fmt.Errorf("no current week; pass a week id")
			}
			week = w
		}

		tasks := stores.Tasks.ForWeek(week.ID)
		taskIDs := make(map[string]bool, len(tasks))
		for _, t := range tasks {
			taskIDs[t.ID] = true
		}
		var entries []models.TimeEntry
		for _, e := range stores.Entries.Items() {
			if taskIDs[e.TaskID] {
				entries = append(entries, e)
			}
		}

		completion := stats.Completion(tasks)
		fmt.Printf("Week %s  (%s – %s)\n", week.ID,
			week.StartDate.Format("2006-01-02"), week.EndDate.Format("2006-01-02"))
		fmt.Printf("Tasks:      %d total, %d completed, %d in progress, %d not started\n",
			completion.Total, completion.Completed, completion.InProgress, completion.NotStarted)
		fmt.Printf("Completion: %d%%\n", completion.CompletionRate)
		fmt.Printf("Time:       %dm planned, %dm tracked, efficiency %d%%, variance %+dm\n",
			week.TotalPlannedMinutes, week.TotalActualMinutes,
			stats.Efficiency(week.TotalPlannedMinutes, week.TotalActualMinutes),
			stats.Variance(week.TotalPlannedMinutes, week.TotalActualMinutes))

		areas := stats.AreaBreakdown(tasks)
		if len(areas) > 0 {
			fmt.Println("\nAreas:")
			for _, a := range areas {
				fmt.Printf("  %-16s %d tasks, %dm planned, %dm tracked, %d%% done\n",
					a.Area, a.TaskCount, a.PlannedMinutes, a.ActualMinutes, a.CompletionRate)
			}
		}

		dist := stats.DailyDistribution(week.StartDate, entries)
		fmt.Println("\nDaily distribution:")
		for _, day := range dist.Days {
			bar := strings.Repeat("█", day.Minutes*30/dist.MaxMinutes)
			fmt.Printf("  %s  %4dm  %s\n", day.Date.Format("Mon 2006-01-02"), day.Minutes, bar)
		}
		return nil
	},
}
