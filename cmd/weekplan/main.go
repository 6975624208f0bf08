package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weekplan/internal/client"
	"weekplan/internal/config"
	"weekplan/internal/logger"
	"weekplan/internal/models"
	"weekplan/internal/store"
	"weekplan/internal/tui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "weekplan",
	Short: "Weekly task planning and time tracking",
	Long: `weekplan organizes tasks into weeks, tracks time against them and
summarizes how the week went.

  weekplan serve                Run the record-store backend
  weekplan dashboard            Open the interactive dashboard
  weekplan week new 2025-05-19  Create a week starting on a date
  weekplan week list            List weeks
  weekplan stats [week-id]      Print a week's reflection summary`,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/local.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd, dashboardCmd, weekCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config and builds the logger; shared by every subcommand.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// buildStores wires the three resource mirrors against the backend. The
// stores are constructed once here and passed by reference; nothing holds
// them as globals.
func buildStores(cfg *config.Config, log *logger.Logger) tui.Stores {
	api := client.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second, log.Logger)
	return tui.Stores{
		Tasks:   store.NewTaskStore(client.NewResource[models.Task](api, "/tasks"), log.Logger),
		Weeks:   store.NewWeekStore(client.NewResource[models.Week](api, "/weeks"), log.Logger),
		Entries: store.NewEntryStore(client.NewResource[models.TimeEntry](api, "/timeEntries"), log.Logger),
	}
}
