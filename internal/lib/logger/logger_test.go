package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	ctx := context.Background()

	assert.True(t, New(EnvLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, New(EnvDev).Enabled(ctx, slog.LevelDebug))
	assert.False(t, New(EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, New(EnvProd).Enabled(ctx, slog.LevelInfo))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}
