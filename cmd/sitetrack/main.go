package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nurpe/sitetrack/cmd/migrate"
	"github.com/nurpe/sitetrack/cmd/resetattendance"
	"github.com/nurpe/sitetrack/cmd/serve"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitetrack",
		Short: "Construction site tracking service",
		Long: `sitetrack keeps projects, laborers, daily attendance, progress notes and
expenses for construction sites, and reports labor and expense totals.

Configuration is read from app.env and environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serve.NewServeCommand())
	rootCmd.AddCommand(migrate.NewMigrateCommand())
	rootCmd.AddCommand(resetattendance.NewResetAttendanceCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
