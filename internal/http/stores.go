package http

import (
	"context"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
)

// Each controller depends on the narrowest store it needs; the database
// repositories satisfy these (see internal/interfaces).

// DocumentStore provides document operations.
type DocumentStore interface {
	AddDocument(ctx context.Context, doc *entities.Document) (uint, error)
	GetDocuments(ctx context.Context) ([]entities.Document, error)
	GetDocumentByID(ctx context.Context, id uint) (*entities.Document, error)
	UpdateDocumentProgress(ctx context.Context, id uint, progress float64) error
	SearchDocuments(ctx context.Context, query string) ([]entities.Document, error)
}

// CollectionStore provides collection operations.
type CollectionStore interface {
	AddCollection(ctx context.Context, col *entities.Collection) (uint, error)
	GetCollections(ctx context.Context) ([]entities.Collection, error)
	AddDocumentToCollection(ctx context.Context, documentID, collectionID uint) error
	GetDocumentsInCollection(ctx context.Context, collectionID uint) ([]entities.Document, error)
}

// HighlightStore provides highlight operations.
type HighlightStore interface {
	AddHighlight(ctx context.Context, h *entities.Highlight) (uint, error)
	GetHighlightByID(ctx context.Context, id uint) (*entities.Highlight, error)
	GetHighlightsForDocument(ctx context.Context, documentID uint) ([]entities.Highlight, error)
	UpdateHighlightReview(ctx context.Context, id uint, mastered bool) error
	SearchHighlights(ctx context.Context, query string) ([]entities.Highlight, error)
}

// TagStore provides tag operations.
type TagStore interface {
	AddTag(ctx context.Context, name string) (*entities.Tag, error)
	GetOrCreateTag(ctx context.Context, name string) (*entities.Tag, error)
	GetTags(ctx context.Context) ([]entities.Tag, error)
	AddDocumentTag(ctx context.Context, documentID, tagID uint) error
	GetTagsForDocument(ctx context.Context, documentID uint) ([]entities.Tag, error)
}

// ReadingSessionStore records reading intervals.
type ReadingSessionStore interface {
	StartReadingSession(ctx context.Context, documentID uint, progressStart float64) (uint, error)
	EndReadingSession(ctx context.Context, id uint, progressEnd float64) error
}

// ReviewSelector picks highlights for review.
type ReviewSelector interface {
	GetHighlightsForReview(ctx context.Context, limit int) ([]entities.Highlight, error)
}

// DataStore provides whole-store operations.
type DataStore interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (database.Stats, error)
	DeleteAll(ctx context.Context) error
}
