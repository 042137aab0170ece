package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/14kear/livepoll/internal/handlers"
	"github.com/14kear/livepoll/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine and mounts the room and poll routes under
// /api/livepoll.
func NewApp(
	log *slog.Logger,
	port int,
	allowedOrigins []string,
	handler *handlers.LivePollHandler,
	participant gin.HandlerFunc,
) *App {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		AllowWebSockets:  true,
	}
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		livepoll := api.Group("/livepoll", participant)
		routes.RegisterRoomRoutes(livepoll, handler)
		routes.RegisterPollRoutes(livepoll, handler)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return &App{
		log:    log,
		engine: r,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		},
		port: port,
	}
}

func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping", slog.String("addr", a.server.Addr))
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
