package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/reader/internal/reader"
)

// ApplyProgressTask writes one reading-progress value reported by the
// reader surface. Tasks carry no sequence number: whichever is processed
// last determines the stored progress.
type ApplyProgressTask struct {
	DocumentID uint    `json:"document_id"`
	Progress   float64 `json:"progress"`
}

// Config returns the queue configuration for progress tasks. A failed
// write is not retried; a retry could overwrite newer progress.
func (t ApplyProgressTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "apply_progress",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     10 * time.Second,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: true,
		},
	}
}

// ApplyProgressProcessor creates a processor function for ApplyProgressTask.
func ApplyProgressProcessor(store reader.ProgressUpdater) backlite.QueueProcessor[ApplyProgressTask] {
	return func(ctx context.Context, task ApplyProgressTask) error {
		if store == nil {
			return fmt.Errorf("progress store not configured")
		}
		if err := store.UpdateDocumentProgress(ctx, task.DocumentID, task.Progress); err != nil {
			return fmt.Errorf("apply progress for document %d: %w", task.DocumentID, err)
		}
		return nil
	}
}

// NewApplyProgressQueue creates a backlite queue for progress tasks.
func NewApplyProgressQueue(store reader.ProgressUpdater) backlite.Queue {
	return backlite.NewQueue(ApplyProgressProcessor(store))
}

// ProgressQueue is a reader.ProgressSink that enqueues progress writes
// instead of applying them inline.
type ProgressQueue struct {
	client *Client
}

// NewProgressQueue registers the progress queue on client and returns a
// sink feeding it. Must be called before client.Start.
func NewProgressQueue(client *Client, store reader.ProgressUpdater) *ProgressQueue {
	client.Register(NewApplyProgressQueue(store))
	return &ProgressQueue{client: client}
}

// Submit enqueues a progress write.
func (q *ProgressQueue) Submit(ctx context.Context, documentID uint, progress float64) error {
	if _, err := q.client.Add(ApplyProgressTask{DocumentID: documentID, Progress: progress}).Ctx(ctx).Save(); err != nil {
		log.Printf("[TASK ERROR] Failed to enqueue progress for document %d: %v", documentID, err)
		return fmt.Errorf("failed to enqueue progress: %w", err)
	}
	return nil
}
