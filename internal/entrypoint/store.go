package entrypoint

import (
	"context"
	"strings"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/collections"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/database/highlights"
	"github.com/mrlokans/reader/internal/database/sessions"
	"github.com/mrlokans/reader/internal/database/tags"
	"github.com/mrlokans/reader/internal/review"
)

// Store bundles the initialized database with its repositories. Both the
// server and the CLI commands build one per process.
type Store struct {
	DB          *database.Database
	Documents   *documents.Repository
	Collections *collections.Repository
	Highlights  *highlights.Repository
	Tags        *tags.Repository
	Sessions    *sessions.Repository
	Review      *review.Selector
}

// OpenStore initializes the database at cfg.Database.Path.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	db := database.New(cfg.Database.Path, database.WithLogLevel(ParseLogLevel(cfg.Database.LogLevel)))
	if err := db.Initialize(ctx); err != nil {
		return nil, err
	}

	hl := highlights.NewRepository(db)
	return &Store{
		DB:          db,
		Documents:   documents.NewRepository(db),
		Collections: collections.NewRepository(db),
		Highlights:  hl,
		Tags:        tags.NewRepository(db),
		Sessions:    sessions.NewRepository(db),
		Review:      review.NewSelector(hl),
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// ParseLogLevel maps DB_LOG_LEVEL onto gorm log levels. Unknown values
// fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
