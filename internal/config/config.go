package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		SessionReaper
		Session
		Review
	}

	HTTP struct {
		Port               int32
		Host               string
		CSRFSecret         string   // CSRF protection is enabled when set (32 bytes)
		CORSAllowedOrigins []string // Origins of a separately hosted UI
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn, info
	}
	Tasks struct {
		Enabled         bool // Apply reader progress through the queue instead of inline
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	SessionReaper struct {
		Enabled  bool
		Schedule string        // Cron format: "*/15 * * * *" = every 15 minutes
		MaxAge   time.Duration // Open reading sessions older than this are closed
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Review struct {
		BatchSize int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("csrf_secret", "")
	v.SetDefault("cors_allowed_origins", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "1m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Reading session defaults
	v.SetDefault("session_reaper_enabled", true)
	v.SetDefault("session_reaper_schedule", "*/15 * * * *")
	v.SetDefault("session_max_age", "4h")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	v.SetDefault("review_batch_size", DefaultReviewBatchSize)

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CSRFSecret:         v.GetString("CSRF_SECRET"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		SessionReaper: SessionReaper{
			Enabled:  v.GetBool("SESSION_REAPER_ENABLED"),
			Schedule: v.GetString("SESSION_REAPER_SCHEDULE"),
			MaxAge:   v.GetDuration("SESSION_MAX_AGE"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Review: Review{
			BatchSize: v.GetInt("REVIEW_BATCH_SIZE"),
		},
	}
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
