package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Empty(t, cfg.HTTP.CSRFSecret)
	assert.Empty(t, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, time.Minute, cfg.Tasks.ReleaseAfter)
	assert.True(t, cfg.SessionReaper.Enabled)
	assert.Equal(t, 4*time.Hour, cfg.SessionReaper.MaxAge)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, DefaultReviewBatchSize, cfg.Review.BatchSize)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("SESSION_MAX_AGE", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://reader.example.com,")
	t.Setenv("REVIEW_BATCH_SIZE", "25")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.SessionReaper.MaxAge)
	assert.Equal(t, []string{"http://localhost:3000", "https://reader.example.com"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 25, cfg.Review.BatchSize)
}
