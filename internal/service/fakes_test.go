package service

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/util"
	"Splintr/internal/repository"
	"context"
	"sync"
	"time"
)

// zeroRand 固定随机源：抖动为零，匿名分流恒为 A 组
type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }
func (zeroRand) Intn(int) int     { return 0 }

type fakeStoryRepo struct {
	repository.StoryRepo
	published []*model.Story
	err       error
}

func (f *fakeStoryRepo) GetPublishedStories(_ context.Context, limit int) ([]*model.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.published) > limit {
		return f.published[:limit], nil
	}
	return f.published, nil
}

func (f *fakeStoryRepo) GetStoriesByCreators(_ context.Context, _ []uint64, limit, offset int) ([]*model.Story, error) {
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.published) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.published) {
		end = len(f.published)
	}
	return f.published[offset:end], nil
}

type fakeSignalRepo struct {
	repository.SignalRepo
	likes       map[uint64]int64
	engagements map[uint64]*model.StoryEngagement
	velocities  map[uint64]*model.StoryVelocity
	authorities map[uint64]*model.CreatorAuthority
	err         error
}

func (f *fakeSignalRepo) GetLikeCounts(context.Context, []uint64) (map[uint64]int64, error) {
	return f.likes, f.err
}

func (f *fakeSignalRepo) GetEngagements(context.Context, []uint64) (map[uint64]*model.StoryEngagement, error) {
	return f.engagements, f.err
}

func (f *fakeSignalRepo) GetVelocities(context.Context, []uint64) (map[uint64]*model.StoryVelocity, error) {
	return f.velocities, f.err
}

func (f *fakeSignalRepo) GetAuthorities(context.Context, []uint64) (map[uint64]*model.CreatorAuthority, error) {
	return f.authorities, f.err
}

type fakeExposureRepo struct {
	repository.ExposureRepo
	mu            sync.Mutex
	exposedByUser map[uint64][]uint64
	creatorCounts map[uint64]int
	created       []*model.FeedExposure
	err           error
}

func (f *fakeExposureRepo) GetExposedStoryIDs(_ context.Context, identity util.Identity, _ time.Time) ([]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.exposedByUser[identity.ViewerID], nil
}

func (f *fakeExposureRepo) GetCreatorExposureCounts(context.Context, util.Identity, time.Time) (map[uint64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.creatorCounts, nil
}

func (f *fakeExposureRepo) CreateBatch(_ context.Context, exposures []*model.FeedExposure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, exposures...)
	return nil
}

func (f *fakeExposureRepo) recorded() []*model.FeedExposure {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.FeedExposure, len(f.created))
	copy(out, f.created)
	return out
}

type fakeInteractionRepo struct {
	repository.InteractionRepo
	recent   []*model.UserInteraction
	tags     map[uint64][]string
	coUsers  []uint64
	coCounts map[uint64]int64
	err      error
}

func (f *fakeInteractionRepo) GetRecentByUser(context.Context, uint64, time.Time, int) ([]*model.UserInteraction, error) {
	return f.recent, f.err
}

func (f *fakeInteractionRepo) GetTagsForStories(context.Context, []uint64) (map[uint64][]string, error) {
	if f.tags == nil {
		return map[uint64][]string{}, f.err
	}
	return f.tags, f.err
}

func (f *fakeInteractionRepo) GetCoEngagedUserIDs(context.Context, []uint64, uint64, int) ([]uint64, error) {
	return f.coUsers, f.err
}

func (f *fakeInteractionRepo) CountCoEngagements(context.Context, []uint64, []uint64) (map[uint64]int64, error) {
	return f.coCounts, f.err
}

type fakeFollowRepo struct {
	repository.UserFollowRepo
	following []uint64
	err       error
}

func (f *fakeFollowRepo) GetFollowingIDs(context.Context, uint64) ([]uint64, error) {
	return f.following, f.err
}

type fakeConfigRepo struct {
	stored  *model.RankingConfig
	err     error
	upserts int
}

func (f *fakeConfigRepo) GetByKeyVariant(context.Context, string, string) (*model.RankingConfig, error) {
	return f.stored, f.err
}

func (f *fakeConfigRepo) Upsert(context.Context, *model.RankingConfig) error {
	f.upserts++
	return f.err
}
