// Package reader implements the sync protocol between the reading surface
// and the store. The surface reports text selections and scroll progress as
// small JSON messages; the host turns selections into highlight drafts and
// forwards progress to a ProgressSink.
package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// EventKind identifies a surface message.
type EventKind string

const (
	EventSelection EventKind = "selection"
	EventScroll    EventKind = "scroll"
)

// ErrInvalidEvent is returned for messages the host cannot act on.
var ErrInvalidEvent = errors.New("invalid reader event")

// Event is one message posted by the reading surface.
type Event struct {
	Kind     EventKind `json:"type"`
	Text     string    `json:"text,omitempty"`
	Progress float64   `json:"progress"`
}

type wireEvent struct {
	Kind     EventKind `json:"type"`
	Text     string    `json:"text"`
	Progress *float64  `json:"progress"`
}

// DecodeEvent parses a surface message. Unknown kinds, empty selections and
// scroll messages without a finite progress are rejected.
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	switch w.Kind {
	case EventSelection:
		text := strings.TrimSpace(w.Text)
		if text == "" {
			return Event{}, fmt.Errorf("%w: empty selection", ErrInvalidEvent)
		}
		return Event{Kind: EventSelection, Text: text}, nil
	case EventScroll:
		if w.Progress == nil || math.IsNaN(*w.Progress) || math.IsInf(*w.Progress, 0) {
			return Event{}, fmt.Errorf("%w: scroll without progress", ErrInvalidEvent)
		}
		return Event{Kind: EventScroll, Progress: *w.Progress}, nil
	default:
		return Event{}, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, w.Kind)
	}
}
