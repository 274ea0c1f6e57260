package reader

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/reader/internal/entities"
)

// ProgressSink receives progress writes. Implementations may apply them in
// any order; the last one applied wins.
type ProgressSink interface {
	Submit(ctx context.Context, documentID uint, progress float64) error
}

// ProgressUpdater persists reading progress.
type ProgressUpdater interface {
	UpdateDocumentProgress(ctx context.Context, id uint, progress float64) error
}

// HighlightAdder persists highlights.
type HighlightAdder interface {
	AddHighlight(ctx context.Context, h *entities.Highlight) (uint, error)
}

// DirectSink applies progress synchronously.
type DirectSink struct {
	Store ProgressUpdater
}

func (s DirectSink) Submit(ctx context.Context, documentID uint, progress float64) error {
	return s.Store.UpdateDocumentProgress(ctx, documentID, progress)
}

// HighlightDraft is a pre-filled highlight awaiting confirmation.
type HighlightDraft struct {
	DocumentID uint   `json:"document_id"`
	Text       string `json:"text"`
	Color      string `json:"color"`
}

// Outcome describes what the host did with an event. Draft is set for
// selections; Progress is set for scroll events.
type Outcome struct {
	Draft    *HighlightDraft `json:"draft,omitempty"`
	Progress *float64        `json:"progress,omitempty"`
}

// Host dispatches surface events. It holds no per-document state: the
// caller tracks which document is open.
type Host struct {
	sink       ProgressSink
	highlights HighlightAdder
}

// NewHost creates a host writing progress to sink and highlights to store.
func NewHost(sink ProgressSink, highlights HighlightAdder) *Host {
	return &Host{sink: sink, highlights: highlights}
}

// Handle processes one event for the open document. Selections never touch
// the store.
func (h *Host) Handle(ctx context.Context, documentID uint, ev Event) (Outcome, error) {
	switch ev.Kind {
	case EventSelection:
		return Outcome{Draft: &HighlightDraft{
			DocumentID: documentID,
			Text:       ev.Text,
			Color:      entities.DefaultHighlightColor,
		}}, nil
	case EventScroll:
		if err := h.sink.Submit(ctx, documentID, ev.Progress); err != nil {
			return Outcome{}, fmt.Errorf("failed to submit progress for document %d: %w", documentID, err)
		}
		p := ev.Progress
		return Outcome{Progress: &p}, nil
	default:
		log.Printf("[READER] Dropping event of unknown type %q", ev.Kind)
		return Outcome{}, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, ev.Kind)
	}
}

// Confirm stores a draft with the user's note and color. An empty color
// keeps the draft's.
func (h *Host) Confirm(ctx context.Context, draft HighlightDraft, note, color string) (uint, error) {
	if color == "" {
		color = draft.Color
	}
	return h.highlights.AddHighlight(ctx, &entities.Highlight{
		DocumentID: draft.DocumentID,
		Text:       draft.Text,
		Note:       note,
		Color:      color,
	})
}
