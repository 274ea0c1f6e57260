// Package documents provides the document operations of the reading store:
// import, listing, lookup, progress updates and search.
//
// # Usage
//
//	repo := documents.NewRepository(db)
//	id, err := repo.AddDocument(ctx, &entities.Document{Kind: entities.DocumentKindArticle, Title: "..."})
package documents

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

// Repository handles all document database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new documents repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// AddDocument validates and inserts doc, returning the assigned ID.
// CreatedAt is set to now and reading progress starts at zero.
func (r *Repository) AddDocument(ctx context.Context, doc *entities.Document) (uint, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	if err := validation.Struct(doc); err != nil {
		return 0, err
	}

	doc.ID = 0
	doc.CreatedAt = r.db.Now()
	doc.LastReadAt = nil
	doc.ReadingProgress = 0

	if err := conn.Create(doc).Error; err != nil {
		return 0, fmt.Errorf("failed to add document: %w", err)
	}
	return doc.ID, nil
}

// GetDocuments returns every document, newest first.
func (r *Repository) GetDocuments(ctx context.Context) ([]entities.Document, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	docs := []entities.Document{}
	err = conn.Order("created_at DESC, id DESC").Find(&docs).Error
	return docs, err
}

// GetDocumentByID returns the document or nil when it does not exist.
// Only store failures produce an error.
func (r *Repository) GetDocumentByID(ctx context.Context, id uint) (*entities.Document, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var doc entities.Document
	err = conn.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentProgress records a reading position and stamps LastReadAt.
// Values outside [0,1] are clamped; regressions are accepted.
func (r *Repository) UpdateDocumentProgress(ctx context.Context, id uint, progress float64) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	if math.IsNaN(progress) {
		return validation.Field("progress", "must be a number")
	}

	result := conn.Model(&entities.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reading_progress": ClampProgress(progress),
			"last_read_at":     r.db.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// SearchDocuments matches query as a case-insensitive substring of title,
// author or content. A blank query matches nothing.
func (r *Repository) SearchDocuments(ctx context.Context, query string) ([]entities.Document, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	docs := []entities.Document{}
	pattern, ok := database.LikePattern(query)
	if !ok {
		return docs, nil
	}

	err = conn.
		Where("fold(title) LIKE ? ESCAPE '\\' OR fold(COALESCE(author, '')) LIKE ? ESCAPE '\\' OR fold(COALESCE(content, '')) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	return docs, err
}

// CountDocuments returns the number of stored documents.
func (r *Repository) CountDocuments(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = conn.Model(&entities.Document{}).Count(&count).Error
	return count, err
}

// ClampProgress limits p to [0,1].
func ClampProgress(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}

// Exists reports whether a document with id is stored.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	doc, err := r.GetDocumentByID(ctx, id)
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}
