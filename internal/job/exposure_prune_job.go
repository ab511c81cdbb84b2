package job

import (
	"Splintr/internal/pkg/logger"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// exposureRetention 曝光流水保留时长，去重与冷却都远小于该窗口
const exposureRetention = 7 * 24 * time.Hour

// ExposurePruneJob 清理过期曝光流水，控制表体积
type ExposurePruneJob struct {
	exposureRepo repository.ExposureRepo
}

func NewExposurePruneJob(exposureRepo repository.ExposureRepo) *ExposurePruneJob {
	return &ExposurePruneJob{exposureRepo: exposureRepo}
}

func (s *ExposurePruneJob) Run() {
	traceID := "job-exposure-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	cutoff := time.Now().Add(-exposureRetention)
	deleted, err := s.exposureRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "prune feed exposures error", "err", err)
		return
	}

	log.InfoContext(ctx, "prune feed exposures success", "deleted", deleted)
}
