package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/entities"
)

type recordingSink struct {
	calls []float64
	err   error
}

func (s *recordingSink) Submit(_ context.Context, _ uint, progress float64) error {
	s.calls = append(s.calls, progress)
	return s.err
}

type recordingStore struct {
	added    []entities.Highlight
	progress map[uint]float64
}

func (s *recordingStore) AddHighlight(_ context.Context, h *entities.Highlight) (uint, error) {
	s.added = append(s.added, *h)
	return uint(len(s.added)), nil
}

func (s *recordingStore) UpdateDocumentProgress(_ context.Context, id uint, progress float64) error {
	if s.progress == nil {
		s.progress = map[uint]float64{}
	}
	s.progress[id] = progress
	return nil
}

func TestHost_SelectionProducesDraftOnly(t *testing.T) {
	sink := &recordingSink{}
	store := &recordingStore{}
	host := NewHost(sink, store)

	out, err := host.Handle(context.Background(), 7, Event{Kind: EventSelection, Text: "a passage"})
	require.NoError(t, err)
	require.NotNil(t, out.Draft)
	assert.Equal(t, HighlightDraft{DocumentID: 7, Text: "a passage", Color: entities.DefaultHighlightColor}, *out.Draft)
	assert.Nil(t, out.Progress)

	assert.Empty(t, store.added, "selection must not persist anything")
	assert.Empty(t, sink.calls)
}

func TestHost_ScrollGoesToSink(t *testing.T) {
	sink := &recordingSink{}
	host := NewHost(sink, &recordingStore{})

	out, err := host.Handle(context.Background(), 3, Event{Kind: EventScroll, Progress: 0.4})
	require.NoError(t, err)
	assert.Nil(t, out.Draft)
	require.NotNil(t, out.Progress)
	assert.Equal(t, 0.4, *out.Progress)
	assert.Equal(t, []float64{0.4}, sink.calls)
}

func TestHost_ScrollSinkError(t *testing.T) {
	boom := errors.New("queue closed")
	host := NewHost(&recordingSink{err: boom}, &recordingStore{})

	_, err := host.Handle(context.Background(), 3, Event{Kind: EventScroll, Progress: 0.4})
	assert.ErrorIs(t, err, boom)
}

func TestHost_UnknownEvent(t *testing.T) {
	host := NewHost(&recordingSink{}, &recordingStore{})

	_, err := host.Handle(context.Background(), 1, Event{Kind: "tap"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestHost_Confirm(t *testing.T) {
	store := &recordingStore{}
	host := NewHost(&recordingSink{}, store)
	draft := HighlightDraft{DocumentID: 9, Text: "keep this", Color: entities.DefaultHighlightColor}

	id, err := host.Confirm(context.Background(), draft, "my note", "")
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)

	_, err = host.Confirm(context.Background(), draft, "", "#00FF00")
	require.NoError(t, err)

	require.Len(t, store.added, 2)
	assert.Equal(t, uint(9), store.added[0].DocumentID)
	assert.Equal(t, "keep this", store.added[0].Text)
	assert.Equal(t, "my note", store.added[0].Note)
	assert.Equal(t, entities.DefaultHighlightColor, store.added[0].Color)
	assert.Equal(t, "#00FF00", store.added[1].Color)
}

func TestDirectSink(t *testing.T) {
	store := &recordingStore{}
	sink := DirectSink{Store: store}

	require.NoError(t, sink.Submit(context.Background(), 2, 0.1))
	require.NoError(t, sink.Submit(context.Background(), 2, 0.9))
	assert.Equal(t, 0.9, store.progress[2])
}
