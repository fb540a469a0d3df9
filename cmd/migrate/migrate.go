package migrate

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/db"
	"github.com/nurpe/sitetrack/internal/logger"
)

const dsnFlag = "dsn"

var migrateFlags = map[string]cobraflags.Flag{
	dsnFlag: &cobraflags.StringFlag{
		Name:  dsnFlag,
		Value: "",
		Usage: "Database DSN; overrides DB_DSN when set",
	},
}

func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update tables, foreign keys and indexes for all entities.

The command is safe to run repeatedly.`,
		RunE: migrateCommand,
	}

	cobraflags.RegisterMap(migrateCmd, migrateFlags)
	return migrateCmd
}

func migrateCommand(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dsn := migrateFlags[dsnFlag].GetString(); dsn != "" {
		cfg.DB.DSN = dsn
	}

	log := logger.New(cfg.Environment)
	database, err := db.New(cfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return nil
}
