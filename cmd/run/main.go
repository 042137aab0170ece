package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/14kear/livepoll/internal/app"
	"github.com/14kear/livepoll/internal/config"
	"github.com/14kear/livepoll/internal/lib/logger"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)

	if cfg.Env == logger.EnvProd {
		gin.SetMode(gin.ReleaseMode)
		log.Info("starting livepoll service")
	} else {
		log.Info("starting livepoll service", slog.Any("config", cfg))
	}

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
				return
			}
			log.Error("failed to run HTTP server", sl.Err(err))
			os.Exit(1)
		}
	}()

	log.Info("livepoll service started", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Engine.ShutdownTimeout)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", sl.Err(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}
