package collections

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

func setupTestDB(t *testing.T) (*Repository, *documents.Repository) {
	t.Helper()
	db := database.New(filepath.Join(t.TempDir(), "test.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, db.Initialize(context.Background()))
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), documents.NewRepository(db)
}

func TestRepository_AddCollection(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.AddCollection(ctx, &entities.Collection{Name: "Programming", Description: "Code", Color: "#007AFF"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	cols, err := repo.GetCollections(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "Programming", cols[0].Name)
	assert.Equal(t, "Code", cols[0].Description)
	assert.Equal(t, "#007AFF", cols[0].Color)
}

func TestRepository_AddCollection_DuplicateName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.AddCollection(ctx, &entities.Collection{Name: "Programming"})
	require.NoError(t, err)

	_, err = repo.AddCollection(ctx, &entities.Collection{Name: "Programming"})
	assert.ErrorIs(t, err, database.ErrDuplicateName)

	cols, err := repo.GetCollections(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, first, cols[0].ID)
}

func TestRepository_AddCollection_BlankName(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.AddCollection(context.Background(), &entities.Collection{Name: " "})
	assert.ErrorIs(t, err, validation.ErrValidation)
}

func TestRepository_GetCollections_OrderedByName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Science", "Art", "Programming"} {
		_, err := repo.AddCollection(ctx, &entities.Collection{Name: name})
		require.NoError(t, err)
	}

	cols, err := repo.GetCollections(ctx)
	require.NoError(t, err)
	names := []string{}
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Art", "Programming", "Science"}, names)
}

func TestRepository_AddDocumentToCollection(t *testing.T) {
	repo, docs := setupTestDB(t)
	ctx := context.Background()

	docID, err := docs.AddDocument(ctx, &entities.Document{Kind: entities.DocumentKindArticle, Title: "Go Generics"})
	require.NoError(t, err)
	colID, err := repo.AddCollection(ctx, &entities.Collection{Name: "Programming"})
	require.NoError(t, err)

	require.NoError(t, repo.AddDocumentToCollection(ctx, docID, colID))
	// Second insert of the same pair is a no-op.
	require.NoError(t, repo.AddDocumentToCollection(ctx, docID, colID))

	inCol, err := repo.GetDocumentsInCollection(ctx, colID)
	require.NoError(t, err)
	require.Len(t, inCol, 1)
	assert.Equal(t, docID, inCol[0].ID)

	t.Run("unknown ids", func(t *testing.T) {
		err := repo.AddDocumentToCollection(ctx, 999, colID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		err = repo.AddDocumentToCollection(ctx, docID, 999)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}
