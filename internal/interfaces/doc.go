// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - DocumentStore, CollectionStore, HighlightStore, TagStore,
//     ReadingSessionStore, DataStore: what the HTTP layer needs from the
//     store (internal/http/stores.go)
//   - review.Source: unmastered highlights for the review selector
//     (internal/review/selector.go)
//
// ## Reader Sync Interfaces
//
//   - reader.ProgressSink: where scroll progress goes. DirectSink writes
//     inline, tasks.ProgressQueue hands it to the background queue.
//   - reader.ProgressUpdater, reader.HighlightAdder: store writes made by the
//     reader host (internal/reader/host.go)
//
// ## Background Job Interfaces
//
//   - scheduler.StaleSessionCloser: closes abandoned reading sessions
//     (internal/scheduler/session_reaper.go)
//
// # Adding a New Review Order
//
// Review ordering is a chain of criteria. A new tie-breaker is a function:
//
//	func ByReviewCount(a, b *entities.Highlight) int {
//	    return cmp.Compare(a.ReviewCount, b.ReviewCount)
//	}
//
//	selector := review.NewSelector(repo, review.ByLastReviewed, ByReviewCount, review.ByID)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
