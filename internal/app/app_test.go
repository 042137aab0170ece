package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/14kear/livepoll/internal/config"
	"github.com/14kear/livepoll/internal/lib/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_InMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Env: logger.EnvLocal}
	cfg.Engine.TickInterval = 10 * time.Millisecond
	cfg.GRPC.Timeout = time.Second

	a := NewApp(logger.Discard(), cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/livepoll/rooms",
		strings.NewReader(`{"name":"Chemistry","teacherId":"t-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.HTTPServer.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Stop(ctx))
}
