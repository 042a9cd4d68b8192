package workers

import (
	"context"
	"time"

	"evalyze_backend/internal/logger"
	"evalyze_backend/internal/services"
)

// CleanupWorker purges uploaded files past the configured retention.
type CleanupWorker struct {
	uploads  services.UploadService
	interval time.Duration
}

func NewCleanupWorker(uploads services.UploadService) *CleanupWorker {
	return &CleanupWorker{
		uploads:  uploads,
		interval: 24 * time.Hour,
	}
}

// Start launches the background loop.
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("cleanup", "stopped", nil)
			return
		case <-ticker.C:
			result, err := w.uploads.CleanupOldFiles(ctx, w.uploads.RetentionDays())
			if err != nil {
				logger.WorkerLog("cleanup", "purge old files", err)
				continue
			}
			if result.DeletedCount > 0 {
				logger.Info("cleanup worker purged old files",
					"deleted", result.DeletedCount,
					"candidates", result.TotalOldFiles,
				)
			}
		}
	}
}
