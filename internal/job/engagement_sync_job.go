package job

import (
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/logger"
	"Splintr/internal/pkg/redis"
	"Splintr/internal/pkg/util"
	"Splintr/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/google/uuid"
)

// EngagementSyncJob 把 Redis 暂存的播放计数批量刷回 story_engagements
type EngagementSyncJob struct {
	signalRepo repository.SignalRepo
}

func NewEngagementSyncJob(signalRepo repository.SignalRepo) *EngagementSyncJob {
	return &EngagementSyncJob{signalRepo: signalRepo}
}

func (s *EngagementSyncJob) Run() {
	traceID := "job-engagement-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 原子切走脏集合，消费端可以继续往新集合写
	processingKey := consts.StoryEngagementDirty + ":processing"
	if err := redis.Rename(ctx, consts.StoryEngagementDirty, processingKey); err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get engagement dirty set error", "err", err)
		return
	}

	storyIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert engagement set to int slice error", "err", err)
		return
	}

	synced := 0
	for _, sid := range storyIDs {
		key := fmt.Sprintf("%s%d", consts.StoryEngagementKey, sid)
		fields, err := redis.HGetAll(ctx, key)
		if err != nil {
			log.ErrorContext(ctx, "read staged engagement error", "story_id", sid, "err", err)
			continue
		}
		views := parseField(fields, consts.EngagementFieldViews)
		completions := parseField(fields, consts.EngagementFieldCompletions)
		replays := parseField(fields, consts.EngagementFieldReplays)
		if views == 0 && completions == 0 && replays == 0 {
			continue
		}

		if err := s.signalRepo.IncrementEngagement(ctx, sid, views, completions, replays); err != nil {
			log.ErrorContext(ctx, "flush engagement error", "story_id", sid, "err", err)
			continue
		}
		// 刷库成功后清掉暂存，失败的留到下一轮重试
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.ErrorContext(ctx, "delete staged engagement error", "story_id", sid, "err", err)
		}
		synced++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete engagement processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync story engagements success",
		"dirty_count", len(storyIDs),
		"synced_count", synced)
}

func parseField(fields map[string]string, name string) int64 {
	v, ok := fields[name]
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
