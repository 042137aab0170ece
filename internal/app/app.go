package app

import (
	"context"
	"errors"
	"log/slog"

	httpapp "github.com/14kear/livepoll/internal/app/http"
	"github.com/14kear/livepoll/internal/broadcast"
	"github.com/14kear/livepoll/internal/config"
	"github.com/14kear/livepoll/internal/engine"
	"github.com/14kear/livepoll/internal/grpcclient"
	"github.com/14kear/livepoll/internal/handlers"
	"github.com/14kear/livepoll/internal/middleware"
	"github.com/14kear/livepoll/internal/repo/memory"
	"github.com/14kear/livepoll/internal/repo/postgres"
	"github.com/14kear/livepoll/internal/services"
	"google.golang.org/grpc"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.App
	Polls      *services.LivePolls
	Hub        *broadcast.Hub
	storage    storage
	conn       *grpc.ClientConn
}

type storage interface {
	services.RoomStorage
	services.PollRecorder
	services.PollLog
	Close() error
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	var store storage
	if cfg.StoragePath == "" {
		log.Warn("storage_path is empty, rooms and history are kept in memory")
		store = memory.New()
	} else {
		pg, err := postgres.New(cfg.StoragePath)
		if err != nil {
			panic(err)
		}
		store = pg
	}

	var (
		identity services.IdentityProvider = grpcclient.Local{}
		conn     *grpc.ClientConn
	)
	if cfg.GRPC.IdentityAddress != "" {
		var err error
		conn, err = grpcclient.Dial(cfg.GRPC.IdentityAddress)
		if err != nil {
			panic(err)
		}
		identity = grpcclient.NewIdentity(conn, cfg.GRPC.Timeout)
	}

	hub := broadcast.NewHub(log, broadcast.Config{
		SendBuffer:     cfg.WebSocket.SendBuffer,
		PingPeriod:     cfg.WebSocket.PingPeriod,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	polls := services.NewLivePolls(log, store, store, hub, engine.WithTickInterval(cfg.Engine.TickInterval))
	rooms := services.NewRooms(log, store, polls, hub)
	results := services.NewResults(log, store, store, identity)

	handler := handlers.NewLivePollHandler(polls, rooms, results, hub)
	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, cfg.HTTP.AllowedOrigins, handler, middleware.Participant())

	return &App{
		log:        log,
		HTTPServer: httpApp,
		Polls:      polls,
		Hub:        hub,
		storage:    store,
		conn:       conn,
	}
}

// Stop drains HTTP, stops every poll countdown, disconnects subscribers and
// closes outbound connections.
func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if err := a.HTTPServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	a.Polls.Shutdown()
	a.Hub.Close()

	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.storage.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
