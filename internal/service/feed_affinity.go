package service

import (
	"Splintr/internal/model"
	"context"
	log "log/slog"
	"time"
)

const (
	topicBoostPerMatch   = 0.02
	topicBoostCap        = 0.2
	coEngageBoostPerUser = 0.02
)

// affinityState 按候选ID索引的个性化加成，缺省为零
type affinityState struct {
	topic    map[uint64]float64
	coEngage map[uint64]float64
}

func emptyAffinity() *affinityState {
	return &affinityState{topic: map[uint64]float64{}, coEngage: map[uint64]float64{}}
}

// computeAffinity 基于观看者近期交互计算题材加成与协同过滤加成。
// 任何一步查询失败都降级为零加成，匿名观看者直接返回空
func (s *feedServiceImpl) computeAffinity(ctx context.Context, viewerID uint64, weights *model.RankingWeights, candidates []*model.Story) *affinityState {
	out := emptyAffinity()
	if viewerID == 0 {
		return out
	}

	since := time.Now().Add(-affinityWindow)
	recent, err := s.interactionRepo.GetRecentByUser(ctx, viewerID, since, s.tuning.AffinitySeedLimit)
	if err != nil {
		log.WarnContext(ctx, "兴趣种子查询失败，跳过个性化加成", "viewer_id", viewerID, "err", err)
		return out
	}
	if len(recent) == 0 {
		return out
	}

	seedSet := make(map[uint64]struct{}, len(recent))
	seedIDs := make([]uint64, 0, len(recent))
	for _, it := range recent {
		if _, ok := seedSet[it.StoryID]; ok {
			continue
		}
		seedSet[it.StoryID] = struct{}{}
		seedIDs = append(seedIDs, it.StoryID)
	}

	candidateIDs := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		candidateIDs = append(candidateIDs, c.ID)
	}

	s.applyTopicBoost(ctx, seedIDs, candidateIDs, out)
	if weights.CFEnabled {
		s.applyCoEngageBoost(ctx, viewerID, weights.CFMaxBoost, seedIDs, candidateIDs, out)
	}
	return out
}

// applyTopicBoost 种子故事的题材频次映射到候选：每次匹配 +0.02，封顶 0.2
func (s *feedServiceImpl) applyTopicBoost(ctx context.Context, seedIDs, candidateIDs []uint64, out *affinityState) {
	seedTags, err := s.interactionRepo.GetTagsForStories(ctx, seedIDs)
	if err != nil {
		log.WarnContext(ctx, "种子题材查询失败，跳过题材加成", "err", err)
		return
	}
	tagFreq := make(map[string]int)
	for _, tags := range seedTags {
		for _, tag := range tags {
			tagFreq[tag]++
		}
	}
	if len(tagFreq) == 0 {
		return
	}

	candTags, err := s.interactionRepo.GetTagsForStories(ctx, candidateIDs)
	if err != nil {
		log.WarnContext(ctx, "候选题材查询失败，跳过题材加成", "err", err)
		return
	}
	for storyID, tags := range candTags {
		matches := 0
		for _, tag := range tags {
			matches += tagFreq[tag]
		}
		if matches == 0 {
			continue
		}
		boost := topicBoostPerMatch * float64(matches)
		if boost > topicBoostCap {
			boost = topicBoostCap
		}
		out.topic[storyID] = boost
	}
}

// applyCoEngageBoost 轻量协同过滤：与观看者交互过相同种子的其他用户，
// 他们交互过的候选按共现用户数加成，封顶 cfMaxBoost
func (s *feedServiceImpl) applyCoEngageBoost(ctx context.Context, viewerID uint64, cfMaxBoost float64, seedIDs, candidateIDs []uint64, out *affinityState) {
	coUsers, err := s.interactionRepo.GetCoEngagedUserIDs(ctx, seedIDs, viewerID, s.tuning.CoEngagementRowLimit)
	if err != nil {
		log.WarnContext(ctx, "共现用户查询失败，跳过协同加成", "err", err)
		return
	}
	if len(coUsers) == 0 {
		return
	}

	counts, err := s.interactionRepo.CountCoEngagements(ctx, coUsers, candidateIDs)
	if err != nil {
		log.WarnContext(ctx, "共现计数查询失败，跳过协同加成", "err", err)
		return
	}
	for storyID, c := range counts {
		boost := coEngageBoostPerUser * float64(c)
		if cfMaxBoost > 0 && boost > cfMaxBoost {
			boost = cfMaxBoost
		}
		out.coEngage[storyID] = boost
	}
}
