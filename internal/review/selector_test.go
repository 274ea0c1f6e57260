package review

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/database/highlights"
	"github.com/mrlokans/reader/internal/entities"
)

type staticSource struct {
	items []entities.Highlight
	err   error
}

func (s staticSource) GetUnmastered(context.Context) ([]entities.Highlight, error) {
	return slices.Clone(s.items), s.err
}

func at(hour int) *time.Time {
	t := time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC)
	return &t
}

func TestCompare_DefaultOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []entities.Highlight{
		{ID: 1, CreatedAt: base, LastReviewedAt: at(12)},
		{ID: 2, CreatedAt: base, LastReviewedAt: at(9)},
		{ID: 3, CreatedAt: base.Add(time.Hour)},
		{ID: 4, CreatedAt: base},
		{ID: 5, CreatedAt: base},
	}

	sel := NewSelector(staticSource{items: items})
	got, err := sel.GetHighlightsForReview(context.Background(), 10)
	require.NoError(t, err)

	ids := make([]uint, 0, len(got))
	for _, h := range got {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []uint{4, 5, 3, 2, 1}, ids)
}

func TestSelector_Limit(t *testing.T) {
	items := make([]entities.Highlight, 0, 15)
	for i := 1; i <= 15; i++ {
		items = append(items, entities.Highlight{ID: uint(i)})
	}
	sel := NewSelector(staticSource{items: items})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 3, 3},
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -1, DefaultLimit},
		{"larger than pool", 50, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sel.GetHighlightsForReview(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSelector_CustomOrder(t *testing.T) {
	items := []entities.Highlight{{ID: 1}, {ID: 2}, {ID: 3}}
	newestFirst := func(a, b *entities.Highlight) int { return -ByID(a, b) }

	got, err := NewSelector(staticSource{items: items}, newestFirst).GetHighlightsForReview(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
}

func TestSelector_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewSelector(staticSource{err: boom}).GetHighlightsForReview(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestSelector_WithStore(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	db := database.New(filepath.Join(t.TempDir(), "test.db"),
		database.WithLogLevel(logger.Silent),
		database.WithClock(clock),
	)
	ctx := context.Background()
	require.NoError(t, db.Initialize(ctx))
	t.Cleanup(func() { db.Close() })

	docs := documents.NewRepository(db)
	repo := highlights.NewRepository(db)

	docID, err := docs.AddDocument(ctx, &entities.Document{Kind: entities.DocumentKindArticle, Title: "Essay"})
	require.NoError(t, err)

	add := func(text string) uint {
		id, err := repo.AddHighlight(ctx, &entities.Highlight{DocumentID: docID, Text: text})
		require.NoError(t, err)
		return id
	}
	first := add("reviewed first")
	second := add("reviewed second")
	fresh := add("never reviewed")
	done := add("mastered")

	require.NoError(t, repo.UpdateHighlightReview(ctx, first, false))
	require.NoError(t, repo.UpdateHighlightReview(ctx, second, false))
	require.NoError(t, repo.UpdateHighlightReview(ctx, done, true))

	got, err := NewSelector(repo).GetHighlightsForReview(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, fresh, got[0].ID)
	assert.Nil(t, got[0].LastReviewedAt)
	assert.Equal(t, first, got[1].ID)
	assert.Equal(t, second, got[2].ID)
	for _, h := range got {
		assert.Equal(t, "Essay", h.DocumentTitle)
		assert.False(t, h.Mastered)
	}
}
