package review

import (
	"cmp"
	"time"

	"github.com/mrlokans/reader/internal/entities"
)

// Criterion compares two highlights for review priority. A negative result
// means a should be reviewed before b.
type Criterion func(a, b *entities.Highlight) int

// DefaultOrder puts never-reviewed highlights first, then the least
// recently reviewed, breaking ties by age and finally by ID.
var DefaultOrder = []Criterion{ByLastReviewed, ByCreated, ByID}

// ByLastReviewed orders highlights that were never reviewed before any
// reviewed one, and reviewed ones by ascending review time.
func ByLastReviewed(a, b *entities.Highlight) int {
	return compareOptionalTime(a.LastReviewedAt, b.LastReviewedAt)
}

// ByCreated orders older highlights first.
func ByCreated(a, b *entities.Highlight) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

// ByID orders by ascending ID.
func ByID(a, b *entities.Highlight) int {
	return cmp.Compare(a.ID, b.ID)
}

// Compare chains criteria: the first non-zero result wins.
func Compare(order ...Criterion) func(a, b entities.Highlight) int {
	return func(a, b entities.Highlight) int {
		for _, c := range order {
			if r := c(&a, &b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
