package kafka

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/redis"
	"Splintr/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// PlaybackHandler 消费播放事件：交互流水落库，播放计数进 Redis 暂存区
type PlaybackHandler struct {
	interactionRepo repository.InteractionRepo
}

func NewPlaybackHandler(interactionRepo repository.InteractionRepo) *PlaybackHandler {
	return &PlaybackHandler{
		interactionRepo: interactionRepo,
	}
}

func (s *PlaybackHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("playback consumer setup")
	return nil
}

func (s *PlaybackHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("playback consumer cleanup")
	return nil
}

func (s *PlaybackHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("playback consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("playback process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PlaybackHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToPlaybackEvent(msg)
	if err != nil {
		// 脏消息只记日志，不阻塞位点推进
		log.WarnContext(ctx, "discard playback event", "err", err)
		return nil
	}

	occurredAt := time.Now()
	if event.OccurredAt > 0 {
		occurredAt = time.Unix(event.OccurredAt, 0)
	}
	interaction := &model.UserInteraction{
		UserID:    event.UserID,
		StoryID:   event.StoryID,
		Type:      event.Type,
		SessionID: event.SessionID,
		CreatedAt: occurredAt,
	}
	if err := s.interactionRepo.CreateInteraction(ctx, interaction); err != nil {
		return err
	}

	s.stageEngagement(ctx, event)
	return nil
}

// stageEngagement 播放计数先进 Redis 哈希暂存，由定时任务批量刷库。
// Redis 故障只丢计数，不影响流水
func (s *PlaybackHandler) stageEngagement(ctx context.Context, event *PlaybackEvent) {
	if redis.GetRdbClient() == nil {
		return
	}

	var field string
	switch event.Type {
	case model.InteractionView:
		field = consts.EngagementFieldViews
	case model.InteractionComplete:
		field = consts.EngagementFieldCompletions
	case model.InteractionReplay:
		field = consts.EngagementFieldReplays
	default:
		return
	}

	key := fmt.Sprintf("%s%d", consts.StoryEngagementKey, event.StoryID)
	if err := redis.HIncrBy(ctx, key, field, 1); err != nil {
		log.WarnContext(ctx, "stage engagement count failed", "story_id", event.StoryID, "err", err)
		return
	}
	if err := redis.SAdd(ctx, consts.StoryEngagementDirty, event.StoryID); err != nil {
		log.WarnContext(ctx, "mark engagement dirty failed", "story_id", event.StoryID, "err", err)
	}
}
