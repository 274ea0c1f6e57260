// Package collections provides database operations for named document
// groupings.
//
// # Usage
//
//	repo := collections.NewRepository(db)
//	id, err := repo.AddCollection(ctx, &entities.Collection{Name: "Programming"})
//	err = repo.AddDocumentToCollection(ctx, docID, id)
package collections

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

// Repository handles all collection database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new collections repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// AddCollection inserts a collection. A taken name yields ErrDuplicateName.
func (r *Repository) AddCollection(ctx context.Context, col *entities.Collection) (uint, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	if err := validation.Struct(col); err != nil {
		return 0, err
	}

	col.ID = 0
	col.CreatedAt = r.db.Now()

	if err := conn.Create(col).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("collection %q: %w", col.Name, database.ErrDuplicateName)
		}
		return 0, fmt.Errorf("failed to add collection: %w", err)
	}
	return col.ID, nil
}

// GetCollections returns all collections ordered by name.
func (r *Repository) GetCollections(ctx context.Context) ([]entities.Collection, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	cols := []entities.Collection{}
	err = conn.Order("name ASC").Find(&cols).Error
	return cols, err
}

// AddDocumentToCollection links a document to a collection. Adding an
// existing pair is a no-op.
func (r *Repository) AddDocumentToCollection(ctx context.Context, documentID, collectionID uint) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}

	link := entities.DocumentCollection{DocumentID: documentID, CollectionID: collectionID}
	err = conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("document %d or collection %d: %w", documentID, collectionID, database.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to add document to collection: %w", err)
	}
	return nil
}

// GetDocumentsInCollection returns the collection's documents, newest first.
func (r *Repository) GetDocumentsInCollection(ctx context.Context, collectionID uint) ([]entities.Document, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	docs := []entities.Document{}
	err = conn.
		Joins("JOIN document_collections ON document_collections.document_id = documents.id").
		Where("document_collections.collection_id = ?", collectionID).
		Order("documents.created_at DESC, documents.id DESC").
		Find(&docs).Error
	return docs, err
}
