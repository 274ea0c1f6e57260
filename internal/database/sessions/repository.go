// Package sessions records reading intervals. Sessions are write-only
// telemetry: nothing else in the store reads them back.
package sessions

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/entities"
)

// Repository handles reading session database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new sessions repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// StartReadingSession opens a session for a document at progressStart.
func (r *Repository) StartReadingSession(ctx context.Context, documentID uint, progressStart float64) (uint, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	session := entities.ReadingSession{
		DocumentID:    documentID,
		StartTime:     r.db.Now(),
		ProgressStart: documents.ClampProgress(progressStart),
	}
	if err := conn.Omit("Document").Create(&session).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("document %d: %w", documentID, database.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to start reading session: %w", err)
	}
	return session.ID, nil
}

// EndReadingSession closes an open session. Unknown or already closed
// sessions yield ErrNotFound.
func (r *Repository) EndReadingSession(ctx context.Context, id uint, progressEnd float64) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}

	result := conn.Model(&entities.ReadingSession{}).
		Where("id = ? AND end_time IS NULL", id).
		Updates(map[string]any{
			"end_time":     r.db.Now(),
			"progress_end": documents.ClampProgress(progressEnd),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to end reading session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("open reading session %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// GetReadingSession returns a session or nil.
func (r *Repository) GetReadingSession(ctx context.Context, id uint) (*entities.ReadingSession, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var sessions []entities.ReadingSession
	if err := conn.Where("id = ?", id).Limit(1).Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// CloseStaleSessions ends every session that has been open longer than
// maxAge, using the document's current progress as the end progress.
func (r *Repository) CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	now := r.db.Now()
	result := conn.Exec(`
		UPDATE reading_sessions
		SET end_time = ?,
			progress_end = (SELECT reading_progress FROM documents WHERE documents.id = reading_sessions.document_id)
		WHERE end_time IS NULL AND start_time < ?
	`, now, now.Add(-maxAge))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to close stale sessions: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Closed %d stale reading sessions", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
