package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/entities"
)

// Database is the single store handle. It is constructed once at process
// start and handed to every repository; nothing touches the tables before
// Initialize has succeeded.
type Database struct {
	path     string
	logLevel logger.LogLevel
	clock    func() time.Time

	mu sync.RWMutex
	db *gorm.DB
}

type Option func(*Database)

// WithClock replaces the time source used for every stored timestamp.
func WithClock(clock func() time.Time) Option {
	return func(d *Database) {
		d.clock = clock
	}
}

// WithLogLevel sets the gorm SQL logger level.
func WithLogLevel(level logger.LogLevel) Option {
	return func(d *Database) {
		d.logLevel = level
	}
}

// New creates an unopened store handle for the sqlite file at path.
func New(path string, opts ...Option) *Database {
	d := &Database{
		path:     path,
		logLevel: logger.Warn,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Initialize opens the database and creates any missing tables. Calling it
// again after a successful run is a no-op; existing data is never dropped.
func (d *Database) Initialize(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}

	dialector := sqlite.New(sqlite.Config{DriverName: foldDriver(), DSN: dsn(d.path)})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(d.logLevel),
		NowFunc:        d.Now,
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, d.path, err)
	}

	err = db.WithContext(ctx).AutoMigrate(
		&entities.Document{},
		&entities.Collection{},
		&entities.DocumentCollection{},
		&entities.Highlight{},
		&entities.Tag{},
		&entities.DocumentTag{},
		&entities.ReadingSession{},
	)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return fmt.Errorf("%w: migrate %s: %w", ErrStorageUnavailable, d.path, err)
	}

	d.db = db
	log.Printf("Database initialized successfully at %s", d.path)
	return nil
}

// Conn returns the gorm handle bound to ctx, or ErrNotInitialized.
func (d *Database) Conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrNotInitialized
	}
	return d.db.WithContext(ctx), nil
}

// SQL returns the underlying connection pool for components that share
// the database file outside gorm, such as the HTTP session store.
func (d *Database) SQL() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrNotInitialized
	}
	return d.db.DB()
}

// Now returns the store clock in UTC.
func (d *Database) Now() time.Time {
	return d.clock().UTC()
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}

// Ping checks the underlying connection.
func (d *Database) Ping(ctx context.Context) error {
	db, err := d.Conn(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Stats holds the aggregate counts shown on the settings surface.
type Stats struct {
	Documents  int64 `json:"documents"`
	Highlights int64 `json:"highlights"`
	Unmastered int64 `json:"unmastered"`
}

func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	db, err := d.Conn(ctx)
	if err != nil {
		return stats, err
	}

	if err := db.Model(&entities.Document{}).Count(&stats.Documents).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Highlight{}).Count(&stats.Highlights).Error; err != nil {
		return stats, err
	}
	err = db.Model(&entities.Highlight{}).Where("mastered = ?", false).Count(&stats.Unmastered).Error
	return stats, err
}

// wipeOrder lists tables children first so foreign keys hold during the wipe.
var wipeOrder = []string{
	"document_tags",
	"document_collections",
	"highlights",
	"reading_sessions",
	"tags",
	"collections",
	"documents",
}

// DeleteAll removes every row from every table in one transaction.
func (d *Database) DeleteAll(ctx context.Context) error {
	db, err := d.Conn(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range wipeOrder {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		log.Printf("All data cleared from %s", d.path)
		return nil
	})
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a user query into a case-folded substring LIKE pattern
// with the wildcards escaped. Match it against fold(column). It reports
// false for a blank query.
func LikePattern(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	return "%" + likeEscaper.Replace(Fold(query)) + "%", true
}
