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

// AuthorityRollupJob 重算创作者信誉：粉丝数 + 名下故事平均完播率
type AuthorityRollupJob struct {
	followRepo repository.UserFollowRepo
	signalRepo repository.SignalRepo
}

func NewAuthorityRollupJob(followRepo repository.UserFollowRepo, signalRepo repository.SignalRepo) *AuthorityRollupJob {
	return &AuthorityRollupJob{
		followRepo: followRepo,
		signalRepo: signalRepo,
	}
}

func (s *AuthorityRollupJob) Run() {
	traceID := "job-authority-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	followerCounts, err := s.followRepo.GetFollowerCounts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "load follower counts error", "err", err)
		return
	}
	completionRates, err := s.signalRepo.GetCreatorCompletionRates(ctx)
	if err != nil {
		log.ErrorContext(ctx, "load creator completion rates error", "err", err)
		return
	}

	creatorIDs := make(map[uint64]struct{}, len(followerCounts)+len(completionRates))
	for id := range followerCounts {
		creatorIDs[id] = struct{}{}
	}
	for id := range completionRates {
		creatorIDs[id] = struct{}{}
	}

	synced := 0
	for creatorID := range creatorIDs {
		authority := &model.CreatorAuthority{
			CreatorID:         creatorID,
			FollowerCount:     followerCounts[creatorID],
			AvgCompletionRate: completionRates[creatorID],
			UpdatedAt:         time.Now(),
		}
		if err := s.signalRepo.UpsertAuthority(ctx, authority); err != nil {
			log.ErrorContext(ctx, "upsert creator authority error", "creator_id", creatorID, "err", err)
			continue
		}
		synced++
	}

	log.InfoContext(ctx, "rollup creator authorities success",
		"creator_count", len(creatorIDs),
		"synced_count", synced)
}
