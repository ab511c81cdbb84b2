package job

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/logger"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// velocityWindow 热度信号的滑动窗口
const velocityWindow = 48 * time.Hour

// VelocityRollupJob 从交互流水重算 48 小时窗口热度
type VelocityRollupJob struct {
	interactionRepo repository.InteractionRepo
	signalRepo      repository.SignalRepo
}

func NewVelocityRollupJob(interactionRepo repository.InteractionRepo, signalRepo repository.SignalRepo) *VelocityRollupJob {
	return &VelocityRollupJob{
		interactionRepo: interactionRepo,
		signalRepo:      signalRepo,
	}
}

func (s *VelocityRollupJob) Run() {
	traceID := "job-velocity-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	since := time.Now().Add(-velocityWindow)
	counts, err := s.interactionRepo.GetTypeCountsSince(ctx, since)
	if err != nil {
		log.ErrorContext(ctx, "load interaction counts error", "err", err)
		return
	}

	synced := 0
	for storyID, typed := range counts {
		velocity := &model.StoryVelocity{
			StoryID:      storyID,
			Views48h:     typed[model.InteractionView],
			Likes48h:     typed[model.InteractionLike],
			Comments48h:  typed[model.InteractionComment],
			Shares48h:    typed[model.InteractionShare],
			Completes48h: typed[model.InteractionComplete],
			UpdatedAt:    time.Now(),
		}
		if err := s.signalRepo.UpsertVelocity(ctx, velocity); err != nil {
			log.ErrorContext(ctx, "upsert story velocity error", "story_id", storyID, "err", err)
			continue
		}
		synced++
	}

	log.InfoContext(ctx, "rollup story velocities success",
		"story_count", len(counts),
		"synced_count", synced)
}
