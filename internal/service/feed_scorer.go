package service

import (
	"Splintr/internal/model"
	"math"
	"math/rand"
	"time"
)

// RandSource 打分抖动与匿名分流的随机源，测试时可注入固定序列
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) Intn(n int) int   { return rand.Intn(n) }

// NewSystemRand 生产环境随机源
func NewSystemRand() RandSource {
	return systemRand{}
}

// storySignals 单条候选的聚合信号，查询失败的维度保持零值
type storySignals struct {
	LikeCount  int64
	Engagement *model.StoryEngagement
	Velocity   *model.StoryVelocity
	Authority  *model.CreatorAuthority
}

// scoreContext 一次打分共享的上下文
type scoreContext struct {
	Weights         *model.RankingWeights
	Now             time.Time
	Following       map[uint64]struct{}
	CreatorExposure map[uint64]int
	TopicBoost      map[uint64]float64
	CoEngageBoost   map[uint64]float64
}

// scoredStory 打过分的候选
type scoredStory struct {
	Story *model.Story
	Score float64
}

// scoreStory 线性打分公式。jitter 由调用方预先抽取，保证函数本身可复算
func scoreStory(story *model.Story, sig *storySignals, sc *scoreContext, jitter float64) float64 {
	w := sc.Weights

	var completionRate float64
	if sig.Engagement != nil && sig.Engagement.TotalViews > 0 {
		completionRate = float64(sig.Engagement.Completions) / float64(sig.Engagement.TotalViews)
	}

	var replayScore float64
	if sig.Engagement != nil {
		replayScore = math.Tanh(float64(sig.Engagement.ReplayUsers) / 20)
	}

	likeScore := math.Tanh(float64(sig.LikeCount) / 50)

	score := w.Completion*completionRate +
		w.Likes*likeScore +
		w.Recency*recencyScore(story, sc.Now, w.FreshnessWindowHours) +
		w.Replay*replayScore +
		w.Velocity*velocityScore(sig.Velocity) +
		w.Authority*authorityScore(sig.Authority)

	if _, ok := sc.Following[story.CreatorID]; ok {
		score += w.FollowBoost
	}

	score += sc.TopicBoost[story.ID]
	score += sc.CoEngageBoost[story.ID]
	score -= cooldownPenalty(sc.CreatorExposure[story.CreatorID])
	score += jitter

	return score
}

// recencyScore 发布时间线性衰减，窗口外归零
func recencyScore(story *model.Story, now time.Time, windowHours float64) float64 {
	if windowHours <= 0 {
		windowHours = 72
	}
	publishedAt := story.CreatedAt
	if story.PublishedAt != nil {
		publishedAt = *story.PublishedAt
	}
	fresh := 1 - now.Sub(publishedAt).Hours()/windowHours
	if fresh < 0 {
		return 0
	}
	return fresh
}

// velocityScore 48小时窗口热度，按交互类型加权
func velocityScore(v *model.StoryVelocity) float64 {
	if v == nil {
		return 0
	}
	return (float64(v.Likes48h)*0.4 +
		float64(v.Comments48h)*0.6 +
		float64(v.Shares48h)*0.8 +
		float64(v.Completes48h)*1.0) / 10
}

// authorityScore 创作者信誉：粉丝规模饱和增长 + 历史平均完播率
func authorityScore(a *model.CreatorAuthority) float64 {
	if a == nil {
		return 0
	}
	return math.Tanh(float64(a.FollowerCount)/1000)*0.3 + a.AvgCompletionRate*0.7
}

// cooldownPenalty 同一创作者近窗口内曝光越多扣分越重，封顶0.2
func cooldownPenalty(exposures int) float64 {
	p := 0.05 * float64(exposures)
	if p > 0.2 {
		return 0.2
	}
	return p
}
