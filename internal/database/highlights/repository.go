// Package highlights provides database operations for highlights: creation,
// per-document listing, review updates and search.
package highlights

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

// Repository handles all highlight database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new highlights repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// AddHighlight stores h for an existing document and returns its ID.
func (r *Repository) AddHighlight(ctx context.Context, h *entities.Highlight) (uint, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	if err := validation.Struct(h); err != nil {
		return 0, err
	}

	var exists int64
	if err := conn.Model(&entities.Document{}).Where("id = ?", h.DocumentID).Count(&exists).Error; err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, fmt.Errorf("document %d: %w", h.DocumentID, database.ErrNotFound)
	}

	if h.Color == "" {
		h.Color = entities.DefaultHighlightColor
	}
	h.ID = 0
	h.CreatedAt = r.db.Now()
	h.LastReviewedAt = nil
	h.ReviewCount = 0
	h.Mastered = false

	if err := conn.Omit("Document").Create(h).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("document %d: %w", h.DocumentID, database.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to add highlight: %w", err)
	}
	return h.ID, nil
}

// GetHighlightByID returns the highlight or nil when it does not exist.
func (r *Repository) GetHighlightByID(ctx context.Context, id uint) (*entities.Highlight, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var h entities.Highlight
	err = withDocumentTitle(conn).Where("highlights.id = ?", id).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHighlightsForDocument returns a document's highlights, newest first.
func (r *Repository) GetHighlightsForDocument(ctx context.Context, documentID uint) ([]entities.Highlight, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	highlights := []entities.Highlight{}
	err = conn.Where("document_id = ?", documentID).
		Order("created_at DESC, id DESC").
		Find(&highlights).Error
	return highlights, err
}

// UpdateHighlightReview records one review in a single statement: the
// counter is incremented, the review time stamped and mastered set as given.
func (r *Repository) UpdateHighlightReview(ctx context.Context, id uint, mastered bool) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}

	result := conn.Model(&entities.Highlight{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"review_count":     gorm.Expr("review_count + 1"),
			"last_reviewed_at": r.db.Now(),
			"mastered":         mastered,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update highlight review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("highlight %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// SearchHighlights matches query as a case-insensitive substring of the
// highlight text or note. A blank query matches nothing.
func (r *Repository) SearchHighlights(ctx context.Context, query string) ([]entities.Highlight, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	highlights := []entities.Highlight{}
	pattern, ok := database.LikePattern(query)
	if !ok {
		return highlights, nil
	}

	err = withDocumentTitle(conn).
		Where("fold(highlights.text) LIKE ? ESCAPE '\\' OR fold(COALESCE(highlights.note, '')) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("highlights.created_at DESC, highlights.id DESC").
		Find(&highlights).Error
	return highlights, err
}

// GetUnmastered returns every highlight not yet marked mastered, with its
// document title, in default review order: never reviewed first, then by
// last review, creation time and id.
func (r *Repository) GetUnmastered(ctx context.Context) ([]entities.Highlight, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	highlights := []entities.Highlight{}
	err = withDocumentTitle(conn).
		Where("highlights.mastered = ?", false).
		Order("highlights.last_reviewed_at IS NOT NULL, highlights.last_reviewed_at, highlights.created_at, highlights.id").
		Find(&highlights).Error
	return highlights, err
}

// CountHighlights returns the number of stored highlights.
func (r *Repository) CountHighlights(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = conn.Model(&entities.Highlight{}).Count(&count).Error
	return count, err
}

func withDocumentTitle(conn *gorm.DB) *gorm.DB {
	return conn.Model(&entities.Highlight{}).
		Select("highlights.*, documents.title AS document_title").
		Joins("JOIN documents ON documents.id = highlights.document_id")
}
