package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func publishedStory(id, creatorID uint64, age time.Duration) *model.Story {
	at := time.Now().Add(-age)
	return &model.Story{
		ID:          id,
		CreatorID:   creatorID,
		Title:       "story",
		Status:      1,
		PublishedAt: &at,
	}
}

type feedFixture struct {
	stories      *fakeStoryRepo
	signals      *fakeSignalRepo
	exposures    *fakeExposureRepo
	interactions *fakeInteractionRepo
	follows      *fakeFollowRepo
	config       *fakeConfigRepo
	svc          FeedService
}

func newFeedFixture(published ...*model.Story) *feedFixture {
	f := &feedFixture{
		stories:      &fakeStoryRepo{published: published},
		signals:      &fakeSignalRepo{},
		exposures:    &fakeExposureRepo{},
		interactions: &fakeInteractionRepo{},
		follows:      &fakeFollowRepo{},
		config:       &fakeConfigRepo{},
	}
	f.svc = NewFeedService(
		f.stories,
		f.signals,
		f.exposures,
		f.interactions,
		f.follows,
		NewRankingConfigService(f.config, time.Minute),
		nil,
		zeroRand{},
		FeedTuning{},
	)
	return f
}

func storyIDsOf(page *dto.FeedPageDTO) []uint64 {
	out := make([]uint64, 0, len(page.Stories))
	for _, s := range page.Stories {
		out = append(out, s.ID)
	}
	return out
}

func TestForYouSuppressesRecentlyExposed(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 100, time.Hour),
		publishedStory(2, 200, 2*time.Hour),
		publishedStory(3, 300, 3*time.Hour),
	)
	f.exposures.exposedByUser = map[uint64][]uint64{7: {2}}

	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.NotContains(t, storyIDsOf(page), uint64(2))

	// 其他观看者不受影响
	page, err = f.svc.ForYou(context.Background(), 8, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.Contains(t, storyIDsOf(page), uint64(2))
}

func TestForYouCoEngagementLift(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 11, time.Hour),
		publishedStory(3, 33, 2*time.Hour),
		publishedStory(4, 44, 3*time.Hour),
	)
	// 除协同过滤外全部权重清零
	f.config.stored = &model.RankingConfig{
		ConfigKey: "fyp_weights",
		Variant:   "A",
		Weights: model.RankingWeights{
			FreshnessWindowHours: 72,
			CFEnabled:            true,
			CFMaxBoost:           0.3,
			PerCreatorMax:        2,
		},
		IsActive: true,
	}
	f.interactions.recent = []*model.UserInteraction{{UserID: 7, StoryID: 1, Type: model.InteractionComplete}}
	f.interactions.coUsers = []uint64{2, 3}
	f.interactions.coCounts = map[uint64]int64{1: 2, 3: 2}

	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10, Variant: "A"})
	require.NoError(t, err)

	ids := storyIDsOf(page)
	require.Contains(t, ids, uint64(3))
	require.Contains(t, ids, uint64(4))
	require.Less(t, indexOf(ids, 3), indexOf(ids, 4), "共现加成的候选应排在无关候选之前")
}

func indexOf(ids []uint64, id uint64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func TestForYouSignalFailureDegrades(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 100, time.Hour),
		publishedStory(2, 200, 2*time.Hour),
	)
	boom := errors.New("db down")
	f.signals.err = boom
	f.exposures.err = boom
	f.interactions.err = boom
	f.follows.err = boom

	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Stories, 2)
}

func TestForYouCandidateFailureFatal(t *testing.T) {
	f := newFeedFixture()
	f.stories.err = errors.New("db down")

	_, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestForYouPaginationTotals(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 100, 1*time.Hour),
		publishedStory(2, 100, 2*time.Hour),
		publishedStory(3, 100, 3*time.Hour),
		publishedStory(4, 100, 4*time.Hour),
		publishedStory(5, 200, 5*time.Hour),
		publishedStory(6, 300, 6*time.Hour),
	)
	f.exposures.exposedByUser = map[uint64][]uint64{7: {6}}

	// 创作者100被上限压到2条，6号被去重：合格候选=3
	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, page.Pagination.Total)
	require.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Stories, 2)

	page, err = f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Stories, 1)

	// 超出末页返回空列表，元信息不变
	page, err = f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Page: 5, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, page.Stories)
	require.Equal(t, 3, page.Pagination.Total)
}

func TestForYouRecordsExposures(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 100, 1*time.Hour),
		publishedStory(2, 200, 2*time.Hour),
		publishedStory(3, 300, 3*time.Hour),
		publishedStory(4, 400, 4*time.Hour),
	)

	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Stories, 2)

	require.Eventually(t, func() bool {
		return len(f.exposures.recorded()) == 2
	}, time.Second, 10*time.Millisecond)

	// 位置是全局排名而非页内下标
	recorded := f.exposures.recorded()
	require.Equal(t, 2, recorded[0].Position)
	require.Equal(t, 3, recorded[1].Position)
	require.Equal(t, uint64(7), recorded[0].UserID)
}

func TestForYouAnonymousSessionExposures(t *testing.T) {
	f := newFeedFixture(
		publishedStory(1, 100, 1*time.Hour),
		publishedStory(2, 200, 2*time.Hour),
	)

	_, err := f.svc.ForYou(context.Background(), 0, "sess-42", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.exposures.recorded()) == 2
	}, time.Second, 10*time.Millisecond)

	recorded := f.exposures.recorded()
	require.Equal(t, uint64(0), recorded[0].UserID)
	require.Equal(t, "sess-42", recorded[0].SessionID)
}

func TestForYouVariantAssignment(t *testing.T) {
	f := newFeedFixture(publishedStory(1, 100, time.Hour))

	// 显式指定优先
	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10, Variant: "B"})
	require.NoError(t, err)
	require.Equal(t, "B", page.Variant)

	// 登录用户稳定散列，两次请求同组
	first, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	second, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, first.Variant, second.Variant)

	// 匿名走随机源
	page, err = f.svc.ForYou(context.Background(), 0, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "A", page.Variant)
}

func TestForYouEmptyPool(t *testing.T) {
	f := newFeedFixture()

	page, err := f.svc.ForYou(context.Background(), 7, "", &dto.FeedQueryDTO{Limit: 10})
	require.NoError(t, err)
	require.Empty(t, page.Stories)
	require.Zero(t, page.Pagination.Total)
}
