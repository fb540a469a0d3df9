package resetattendance

import (
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/nurpe/sitetrack/internal/app"
	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/db"
	"github.com/nurpe/sitetrack/internal/logger"
)

const dateFlag = "date"

var resetFlags = map[string]cobraflags.Flag{
	dateFlag: &cobraflags.StringFlag{
		Name:  dateFlag,
		Value: "",
		Usage: "Day to reset as YYYY-MM-DD (defaults to today in APP_TIMEZONE)",
	},
}

func NewResetAttendanceCommand() *cobra.Command {
	resetCmd := &cobra.Command{
		Use:   "reset-attendance",
		Short: "Create today's absent attendance rows for every laborer",
		Long: `Create an absent attendance row for every laborer on their assigned project.

Rows that already exist are left alone, so running the command twice on the
same day changes nothing. Each laborer is reported as created or existing.`,
		RunE: resetCommand,
	}

	cobraflags.RegisterMap(resetCmd, resetFlags)
	return resetCmd
}

func resetCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Environment)
	database, err := db.New(cfg, log)
	if err != nil {
		return err
	}
	attendance := app.New(cfg, database, log).Services.Attendance

	ctx := cmd.Context()
	if raw := resetFlags[dateFlag].GetString(); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", dateFlag, raw)
		}
		result, err := attendance.ResetForDate(ctx, day)
		printSummary(cmd, result.Date, result.CreatedCount(), len(result.Outcomes))
		return err
	}

	result, err := attendance.ResetForToday(ctx)
	printSummary(cmd, result.Date, result.CreatedCount(), len(result.Outcomes))
	return err
}

func printSummary(cmd *cobra.Command, day time.Time, created, total int) {
	cmd.Printf("Attendance for %s: %d created, %d already existed\n", day.Format("2006-01-02"), created, total-created)
}
