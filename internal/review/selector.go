// Package review picks the highlights that should be shown next for review.
//
// Selection is a read-only query: recording a review goes through the
// highlights repository.
package review

import (
	"context"
	"fmt"
	"slices"

	"github.com/mrlokans/reader/internal/entities"
)

// DefaultLimit is used when the caller does not ask for a positive limit.
const DefaultLimit = 10

// Source supplies the highlights eligible for review.
type Source interface {
	GetUnmastered(ctx context.Context) ([]entities.Highlight, error)
}

// Selector builds review batches from a Source.
type Selector struct {
	source Source
	order  []Criterion
}

// NewSelector creates a selector. With no criteria DefaultOrder is used.
func NewSelector(source Source, order ...Criterion) *Selector {
	if len(order) == 0 {
		order = DefaultOrder
	}
	return &Selector{source: source, order: order}
}

// GetHighlightsForReview returns up to limit unmastered highlights in
// review order, each carrying its document title.
func (s *Selector) GetHighlightsForReview(ctx context.Context, limit int) ([]entities.Highlight, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	// Loads and sorts the whole unmastered backlog in memory so any
	// criterion chain applies; cost grows with the backlog. Rows from the
	// store already arrive in DefaultOrder.
	candidates, err := s.source.GetUnmastered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load review candidates: %w", err)
	}

	slices.SortStableFunc(candidates, Compare(s.order...))
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
