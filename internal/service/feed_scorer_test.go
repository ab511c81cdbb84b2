package service

import (
	"Splintr/internal/model"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func storyAt(id, creatorID uint64, publishedAt time.Time) *model.Story {
	return &model.Story{
		ID:          id,
		CreatorID:   creatorID,
		Status:      1,
		PublishedAt: &publishedAt,
	}
}

func emptyScoreContext(now time.Time) *scoreContext {
	return &scoreContext{
		Weights:         DefaultWeights("A"),
		Now:             now,
		Following:       map[uint64]struct{}{},
		CreatorExposure: map[uint64]int{},
		TopicBoost:      map[uint64]float64{},
		CoEngageBoost:   map[uint64]float64{},
	}
}

func TestScoreStoryFreshnessMonotonic(t *testing.T) {
	now := time.Now()
	sc := emptyScoreContext(now)
	sig := &storySignals{}

	newer := storyAt(1, 10, now.Add(-2*time.Hour))
	older := storyAt(2, 11, now.Add(-50*time.Hour))

	require.GreaterOrEqual(t,
		scoreStory(newer, sig, sc, 0),
		scoreStory(older, sig, sc, 0))
}

func TestScoreStoryZeroSignalsSafe(t *testing.T) {
	now := time.Now()
	sc := emptyScoreContext(now)

	story := storyAt(1, 10, now.Add(-10*time.Hour))
	score := scoreStory(story, &storySignals{}, sc, 0)

	require.False(t, math.IsNaN(score))
	require.False(t, math.IsInf(score, 0))

	// 所有信号缺失时只剩新鲜度一项
	expected := sc.Weights.Recency * recencyScore(story, now, sc.Weights.FreshnessWindowHours)
	require.InDelta(t, expected, score, 1e-9)
}

func TestRecencyScoreWindowBounds(t *testing.T) {
	now := time.Now()

	fresh := storyAt(1, 10, now)
	require.InDelta(t, 1.0, recencyScore(fresh, now, 72), 1e-6)

	expired := storyAt(2, 10, now.Add(-100*time.Hour))
	require.Zero(t, recencyScore(expired, now, 72))
}

func TestCooldownPenaltyCapped(t *testing.T) {
	require.Zero(t, cooldownPenalty(0))
	require.InDelta(t, 0.05, cooldownPenalty(1), 1e-9)
	require.InDelta(t, 0.2, cooldownPenalty(4), 1e-9)
	require.InDelta(t, 0.2, cooldownPenalty(100), 1e-9)
}

func TestVelocityScoreNilSafe(t *testing.T) {
	require.Zero(t, velocityScore(nil))
	require.Zero(t, authorityScore(nil))

	v := &model.StoryVelocity{Likes48h: 10, Comments48h: 5, Shares48h: 2, Completes48h: 20}
	require.InDelta(t, (10*0.4+5*0.6+2*0.8+20*1.0)/10, velocityScore(v), 1e-9)
}

// 高热度新故事排在低热度旧故事之前
func TestScoreStoryEndToEndOrdering(t *testing.T) {
	now := time.Now()
	sc := emptyScoreContext(now)

	s1 := storyAt(1, 100, now.Add(-2*time.Hour))
	s1Sig := &storySignals{
		LikeCount:  120,
		Engagement: &model.StoryEngagement{StoryID: 1, TotalViews: 100, Completions: 50, ReplayUsers: 10},
		Velocity:   &model.StoryVelocity{StoryID: 1, Likes48h: 50, Comments48h: 20},
		Authority:  &model.CreatorAuthority{CreatorID: 100, FollowerCount: 10000, AvgCompletionRate: 0.5},
	}

	s2 := storyAt(2, 200, now.Add(-70*time.Hour))
	s2Sig := &storySignals{
		LikeCount:  3,
		Engagement: &model.StoryEngagement{StoryID: 2, TotalViews: 50, Completions: 5},
		Velocity:   &model.StoryVelocity{StoryID: 2, Likes48h: 1},
		Authority:  &model.CreatorAuthority{CreatorID: 200, FollowerCount: 10, AvgCompletionRate: 0.1},
	}

	require.Greater(t, scoreStory(s1, s1Sig, sc, 0), scoreStory(s2, s2Sig, sc, 0))
}

func TestDefaultWeightsVariantShift(t *testing.T) {
	a := DefaultWeights("A")
	b := DefaultWeights("B")

	require.InDelta(t, 1.0, a.Completion, 1e-9)
	require.InDelta(t, 0.6, a.Velocity, 1e-9)
	require.InDelta(t, 0.6, b.Completion, 1e-9)
	require.InDelta(t, 1.0, b.Velocity, 1e-9)

	// 其余系数两组一致
	require.Equal(t, a.Recency, b.Recency)
	require.Equal(t, a.PerCreatorMax, b.PerCreatorMax)
}
