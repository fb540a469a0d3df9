package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/nurpe/sitetrack/internal/app"
	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/db"
	"github.com/nurpe/sitetrack/internal/logger"
	"github.com/nurpe/sitetrack/internal/scheduler"
)

const addrFlag = "addr"

var serveFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address host:port; overrides HTTP_HOST and HTTP_PORT when set",
	},
}

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily attendance reset",
		Long: `Apply migrations, start the HTTP API and, when ATTENDANCE_RESET_ENABLED is
set, reset attendance once at startup and then daily at ATTENDANCE_RESET_AT.`,
		RunE: serveCommand,
	}

	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect database")
		return err
	}
	if err := db.Migrate(database); err != nil {
		log.Error().Err(err).Msg("failed to apply migrations")
		return err
	}

	application := app.New(cfg, database, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Attendance.ResetEnabled {
		attendance := application.Services.Attendance
		daily, err := scheduler.NewDaily("attendance-reset", cfg.Attendance.ResetAt, cfg.Location, func(ctx context.Context) error {
			_, err := attendance.ResetForToday(ctx)
			return err
		}, log)
		if err != nil {
			return err
		}
		daily.RunOnStart = true
		go daily.Run(ctx)
	}

	addr := serveFlags[addrFlag].GetString()
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting sitetrack")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
