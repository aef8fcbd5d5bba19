package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"adminpanel/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeImageDelete deletes a batch of superseded images.
	TypeImageDelete = "image:delete"
	// TypeOrphanSweep removes stored images no wallpaper references.
	TypeOrphanSweep = "image:orphan-sweep"
)

// ImageDeletePayload is the body of a TypeImageDelete task.
type ImageDeletePayload struct {
	URLs []string `json:"urls"`
}

// Reaper removes images that are no longer referenced.
type Reaper interface {
	Reap(ctx context.Context, urls []string) error
}

// QueueReaper hands deletions to the background worker so a slow or failing
// store never blocks the request that superseded the images.
type QueueReaper struct {
	client   *asynq.Client
	maxRetry int
}

func NewQueueReaper(client *asynq.Client) *QueueReaper {
	return &QueueReaper{client: client, maxRetry: 5}
}

func (q *QueueReaper) Reap(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	task, err := NewImageDeleteTask(urls)
	if err != nil {
		return err
	}
	info, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(q.maxRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue image deletion: %w", err)
	}
	utils.GetLogger().Debug("Image deletion enqueued", zap.String("taskID", info.ID), zap.Int("count", len(urls)))
	return nil
}

func NewImageDeleteTask(urls []string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageDeletePayload{URLs: urls})
	if err != nil {
		return nil, fmt.Errorf("failed to encode image delete payload: %w", err)
	}
	return asynq.NewTask(TypeImageDelete, payload), nil
}

// SyncReaper deletes inline. Used when no queue is available.
type SyncReaper struct {
	Store ImageStore
}

func (r SyncReaper) Reap(ctx context.Context, urls []string) error {
	return DeleteAll(ctx, r.Store, urls)
}

// DeleteAll tries every URL and returns the first failure.
func DeleteAll(ctx context.Context, store ImageStore, urls []string) error {
	var firstErr error
	for _, u := range urls {
		if err := store.Delete(ctx, u); err != nil {
			utils.GetLogger().Warn("Failed to delete image", zap.String("url", u), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
