package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adminpanel/config"
	wallpaperRepo "adminpanel/database/repository/wallpaper"
	"adminpanel/services/storage"
	"adminpanel/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// orphanGracePeriod keeps the sweep away from images written by an update
// that has not swapped its record yet.
const orphanGracePeriod = time.Hour

// RedisOpt returns the asynq connection for the job queue database.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// ImageWorker processes image deletions and runs the periodic orphan sweep.
type ImageWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	sweepSpec string
}

// NewImageWorker wires the task handlers. The sweep is only registered when
// the store can list its contents.
func NewImageWorker(cfg config.Config, store storage.ImageStore, wallpapers wallpaperRepo.WallpaperRepository) *ImageWorker {
	redisOpts := RedisOpt(cfg)

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(storage.TypeImageDelete, HandleImageDeleteTask(store))

	w := &ImageWorker{server: srv, mux: mux}
	if lister, ok := store.(storage.Lister); ok && cfg.OrphanSweepSpec != "" {
		mux.HandleFunc(storage.TypeOrphanSweep, HandleOrphanSweepTask(store, lister, wallpapers, time.Now))
		w.scheduler = asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		w.sweepSpec = cfg.OrphanSweepSpec
	}
	return w
}

// Start runs the worker and scheduler in the background, retrying the
// worker start with a growing delay.
func (w *ImageWorker) Start() error {
	logger := utils.GetLogger()

	if w.scheduler != nil {
		if _, err := w.scheduler.Register(w.sweepSpec, asynq.NewTask(storage.TypeOrphanSweep, nil), asynq.MaxRetry(0)); err != nil {
			return fmt.Errorf("failed to register orphan sweep: %w", err)
		}
		if err := w.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	go func() {
		logger.Info("ImageWorker: starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Start(w.mux)
			if err == nil {
				return
			}
			logger.Error("ImageWorker: failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("ImageWorker: max retry attempts reached; image deletions stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return nil
}

func (w *ImageWorker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
}

// HandleImageDeleteTask deletes every URL in the payload. A failure makes
// asynq retry the whole batch; deleting twice is harmless.
func HandleImageDeleteTask(store storage.ImageStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p storage.ImageDeletePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("ImageDelete: invalid payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		return storage.DeleteAll(ctx, store, p.URLs)
	}
}

// HandleOrphanSweepTask deletes stored images that no wallpaper references
// and that are older than the grace period.
func HandleOrphanSweepTask(store storage.ImageStore, lister storage.Lister, wallpapers wallpaperRepo.WallpaperRepository, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()

		stored, err := lister.List(ctx)
		if err != nil {
			return err
		}
		referenced, err := wallpapers.ImagePaths(ctx)
		if err != nil {
			return err
		}

		cutoff := now().Add(-orphanGracePeriod)
		var orphans []string
		for _, img := range stored {
			if _, ok := referenced[img.URL]; ok {
				continue
			}
			if img.ModTime.After(cutoff) {
				continue
			}
			orphans = append(orphans, img.URL)
		}
		if len(orphans) == 0 {
			return nil
		}

		logger.Info("OrphanSweep: deleting unreferenced images", zap.Int("count", len(orphans)))
		return storage.DeleteAll(ctx, store, orphans)
	}
}
