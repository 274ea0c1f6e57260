package highlights

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func setupTestDB(t *testing.T) (*Repository, uint) {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	db := database.New(filepath.Join(t.TempDir(), "test.db"),
		database.WithLogLevel(logger.Silent),
		database.WithClock(clock.Now),
	)
	require.NoError(t, db.Initialize(context.Background()))
	t.Cleanup(func() { db.Close() })

	docID, err := documents.NewRepository(db).AddDocument(context.Background(), &entities.Document{
		Kind:  entities.DocumentKindArticle,
		Title: "Thinking in Systems",
	})
	require.NoError(t, err)

	return NewRepository(db), docID
}

func TestRepository_AddHighlight(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.AddHighlight(ctx, &entities.Highlight{
		DocumentID: docID,
		Text:       "A system is more than the sum of its parts.",
		Note:       "key idea",
		Position:   entities.Position(`{"offset": 120, "chapter": "1"}`),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A system is more than the sum of its parts.", got.Text)
	assert.Equal(t, "key idea", got.Note)
	assert.Equal(t, entities.DefaultHighlightColor, got.Color)
	assert.JSONEq(t, `{"offset": 120, "chapter": "1"}`, string(got.Position))
	assert.Equal(t, "Thinking in Systems", got.DocumentTitle)
	assert.Zero(t, got.ReviewCount)
	assert.False(t, got.Mastered)
	assert.Nil(t, got.LastReviewedAt)
}

func TestRepository_AddHighlight_PositionPassthrough(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		position string
	}{
		{name: "string locator", position: `"page=3;offset=120"`},
		{name: "array locator", position: `[3, 120, "epubcfi(/6/4)"]`},
		{name: "number locator", position: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := repo.AddHighlight(ctx, &entities.Highlight{
				DocumentID: docID,
				Text:       tt.name,
				Position:   entities.Position(tt.position),
			})
			require.NoError(t, err)

			got, err := repo.GetHighlightByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.JSONEq(t, tt.position, string(got.Position))
		})
	}
}

func TestRepository_AddHighlight_NoPosition(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "anywhere"})
	require.NoError(t, err)

	got, err := repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Position)
}

func TestRepository_AddHighlight_KeepsColor(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "green", Color: "#00FF00"})
	require.NoError(t, err)

	got, err := repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", got.Color)
}

func TestRepository_AddHighlight_Invalid(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: ""})
	assert.ErrorIs(t, err, validation.ErrValidation)

	_, err = repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID + 100, Text: "orphan"})
	assert.ErrorIs(t, err, database.ErrNotFound)

	hs, err := repo.GetHighlightsForDocument(ctx, docID)
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestRepository_GetHighlightsForDocument_NewestFirst(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: text})
		require.NoError(t, err)
	}

	hs, err := repo.GetHighlightsForDocument(ctx, docID)
	require.NoError(t, err)
	require.Len(t, hs, 3)
	assert.Equal(t, "third", hs[0].Text)
	assert.Equal(t, "first", hs[2].Text)
}

func TestRepository_UpdateHighlightReview(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	id, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "review me"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateHighlightReview(ctx, id, false))
	got, err := repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.False(t, got.Mastered)
	require.NotNil(t, got.LastReviewedAt)
	firstReview := *got.LastReviewedAt

	require.NoError(t, repo.UpdateHighlightReview(ctx, id, true))
	got, err = repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewCount)
	assert.True(t, got.Mastered)
	assert.True(t, got.LastReviewedAt.After(firstReview))

	// The flag is set, not toggled.
	require.NoError(t, repo.UpdateHighlightReview(ctx, id, true))
	got, err = repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ReviewCount)
	assert.True(t, got.Mastered)

	require.NoError(t, repo.UpdateHighlightReview(ctx, id, false))
	got, err = repo.GetHighlightByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Mastered)
}

func TestRepository_GetUnmastered(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	ids := make([]uint, 0, 4)
	for _, text := range []string{"a", "b", "c", "d"} {
		id, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: text})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	// a reviewed after b; c mastered; d never reviewed.
	require.NoError(t, repo.UpdateHighlightReview(ctx, ids[1], false))
	require.NoError(t, repo.UpdateHighlightReview(ctx, ids[0], false))
	require.NoError(t, repo.UpdateHighlightReview(ctx, ids[2], true))

	got, err := repo.GetUnmastered(ctx)
	require.NoError(t, err)

	order := []uint{}
	for _, h := range got {
		order = append(order, h.ID)
		assert.Equal(t, "Thinking in Systems", h.DocumentTitle)
	}
	assert.Equal(t, []uint{ids[3], ids[1], ids[0]}, order)
}

func TestRepository_UpdateHighlightReview_Missing(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.UpdateHighlightReview(context.Background(), 12345, true)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_SearchHighlights(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "Feedback loops drive behaviour"})
	require.NoError(t, err)
	_, err = repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "Stocks and flows", Note: "Remember the BATHTUB"})
	require.NoError(t, err)

	hs, err := repo.SearchHighlights(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, hs)

	hs, err = repo.SearchHighlights(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, hs)

	hs, err = repo.SearchHighlights(ctx, "FEEDBACK")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Feedback loops drive behaviour", hs[0].Text)
	assert.Equal(t, "Thinking in Systems", hs[0].DocumentTitle)

	hs, err = repo.SearchHighlights(ctx, "bathtub")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Stocks and flows", hs[0].Text)
}

func TestRepository_SearchHighlights_UnicodeCase(t *testing.T) {
	repo, docID := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: "Ölpreise steigen", Note: "ÉCONOMIE"})
	require.NoError(t, err)

	hs, err := repo.SearchHighlights(ctx, "ölpreise")
	require.NoError(t, err)
	assert.Len(t, hs, 1)

	hs, err = repo.SearchHighlights(ctx, "économie")
	require.NoError(t, err)
	assert.Len(t, hs, 1)
}
