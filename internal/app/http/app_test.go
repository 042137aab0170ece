package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/14kear/livepoll/internal/broadcast"
	"github.com/14kear/livepoll/internal/grpcclient"
	"github.com/14kear/livepoll/internal/handlers"
	"github.com/14kear/livepoll/internal/lib/logger"
	"github.com/14kear/livepoll/internal/middleware"
	"github.com/14kear/livepoll/internal/repo/memory"
	"github.com/14kear/livepoll/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, origins []string) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Discard()
	store := memory.New()
	hub := broadcast.NewHub(log, broadcast.Config{AllowedOrigins: origins})
	polls := services.NewLivePolls(log, store, store, hub)
	t.Cleanup(polls.Shutdown)

	h := handlers.NewLivePollHandler(polls, services.NewRooms(log, store, polls, hub), services.NewResults(log, store, store, grpcclient.Local{}), hub)
	return NewApp(log, 0, origins, h, middleware.Participant())
}

func TestApp_Ping(t *testing.T) {
	a := newTestApp(t, nil)

	w := httptest.NewRecorder()
	a.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestApp_CORS(t *testing.T) {
	a := newTestApp(t, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/livepoll/rooms", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.Engine().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/livepoll/rooms", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	a.Engine().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
