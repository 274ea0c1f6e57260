// Package tags provides database operations for tag management.
//
// This package implements the TagStore interface defined in internal/http/tags.go.
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	tag, err := repo.GetOrCreateTag(ctx, "fiction")
//	err = repo.AddDocumentTag(ctx, docID, tag.ID)
package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

// Repository handles all tag database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new tags repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// AddTag creates a new tag. A taken name yields ErrDuplicateName.
func (r *Repository) AddTag(ctx context.Context, name string) (*entities.Tag, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	tag := &entities.Tag{Name: strings.TrimSpace(name)}
	if err := validation.Struct(tag); err != nil {
		return nil, err
	}

	if err := conn.Create(tag).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q: %w", tag.Name, database.ErrDuplicateName)
		}
		return nil, fmt.Errorf("failed to add tag: %w", err)
	}
	return tag, nil
}

// GetOrCreateTag returns the tag with the exact name, creating it if needed.
func (r *Repository) GetOrCreateTag(ctx context.Context, name string) (*entities.Tag, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var tag entities.Tag
	err = conn.Where("name = ?", strings.TrimSpace(name)).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, err := r.AddTag(ctx, name)
		if errors.Is(err, database.ErrDuplicateName) {
			// Lost a race with a concurrent insert; the row exists now.
			err = conn.Where("name = ?", strings.TrimSpace(name)).First(&tag).Error
			return &tag, err
		}
		return created, err
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTags returns all tags ordered by name.
func (r *Repository) GetTags(ctx context.Context) ([]entities.Tag, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	tags := []entities.Tag{}
	err = conn.Order("name ASC").Find(&tags).Error
	return tags, err
}

// AddDocumentTag associates a tag with a document. Adding an existing pair
// is a no-op.
func (r *Repository) AddDocumentTag(ctx context.Context, documentID, tagID uint) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}

	link := entities.DocumentTag{DocumentID: documentID, TagID: tagID}
	err = conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("document %d or tag %d: %w", documentID, tagID, database.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to tag document: %w", err)
	}
	return nil
}

// GetTagsForDocument returns the tags attached to a document, ordered by name.
func (r *Repository) GetTagsForDocument(ctx context.Context, documentID uint) ([]entities.Tag, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	tags := []entities.Tag{}
	err = conn.
		Joins("JOIN document_tags ON document_tags.tag_id = tags.id").
		Where("document_tags.document_id = ?", documentID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}
