package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/database/collections"
	"github.com/mrlokans/reader/internal/database/documents"
	"github.com/mrlokans/reader/internal/database/highlights"
	"github.com/mrlokans/reader/internal/database/sessions"
	"github.com/mrlokans/reader/internal/database/tags"
	"github.com/mrlokans/reader/internal/http"
	"github.com/mrlokans/reader/internal/reader"
	"github.com/mrlokans/reader/internal/review"
	"github.com/mrlokans/reader/internal/scheduler"
	"github.com/mrlokans/reader/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.DocumentStore = (*documents.Repository)(nil)
var _ http.CollectionStore = (*collections.Repository)(nil)
var _ http.HighlightStore = (*highlights.Repository)(nil)
var _ http.TagStore = (*tags.Repository)(nil)
var _ http.ReadingSessionStore = (*sessions.Repository)(nil)
var _ http.DataStore = (*database.Database)(nil)

// =============================================================================
// Review
// =============================================================================

var _ review.Source = (*highlights.Repository)(nil)
var _ http.ReviewSelector = (*review.Selector)(nil)

// =============================================================================
// Reader Sync
// =============================================================================

// ProgressSink implementations
var _ reader.ProgressSink = reader.DirectSink{}
var _ reader.ProgressSink = (*tasks.ProgressQueue)(nil)

var _ reader.ProgressUpdater = (*documents.Repository)(nil)
var _ reader.HighlightAdder = (*highlights.Repository)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

var _ scheduler.StaleSessionCloser = (*sessions.Repository)(nil)
