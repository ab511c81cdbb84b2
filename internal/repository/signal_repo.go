package repository

import (
	"Splintr/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignalRepo 排序信号表的批量读取与异步回填
type SignalRepo interface {
	GetLikeCounts(ctx context.Context, storyIDs []uint64) (map[uint64]int64, error)
	GetEngagements(ctx context.Context, storyIDs []uint64) (map[uint64]*model.StoryEngagement, error)
	GetVelocities(ctx context.Context, storyIDs []uint64) (map[uint64]*model.StoryVelocity, error)
	GetAuthorities(ctx context.Context, creatorIDs []uint64) (map[uint64]*model.CreatorAuthority, error)

	IncrementEngagement(ctx context.Context, storyID uint64, views, completions, replays int64) error
	UpsertVelocity(ctx context.Context, velocity *model.StoryVelocity) error
	UpsertAuthority(ctx context.Context, authority *model.CreatorAuthority) error
	GetCreatorCompletionRates(ctx context.Context) (map[uint64]float64, error)
}

type SignalRepoImpl struct {
	db *gorm.DB
}

func NewSignalRepo(db *gorm.DB) SignalRepo {
	return &SignalRepoImpl{db}
}

func (s *SignalRepoImpl) GetLikeCounts(ctx context.Context, storyIDs []uint64) (map[uint64]int64, error) {
	type row struct {
		StoryID uint64
		Count   int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.StoryLike{}).
		Select("story_id, COUNT(*) AS count").
		Where("story_id IN ?", storyIDs).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		out[r.StoryID] = r.Count
	}
	return out, nil
}

func (s *SignalRepoImpl) GetEngagements(ctx context.Context, storyIDs []uint64) (map[uint64]*model.StoryEngagement, error) {
	var rows []*model.StoryEngagement
	err := s.db.WithContext(ctx).Where("story_id IN ?", storyIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]*model.StoryEngagement, len(rows))
	for _, r := range rows {
		out[r.StoryID] = r
	}
	return out, nil
}

func (s *SignalRepoImpl) GetVelocities(ctx context.Context, storyIDs []uint64) (map[uint64]*model.StoryVelocity, error) {
	var rows []*model.StoryVelocity
	err := s.db.WithContext(ctx).Where("story_id IN ?", storyIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]*model.StoryVelocity, len(rows))
	for _, r := range rows {
		out[r.StoryID] = r
	}
	return out, nil
}

func (s *SignalRepoImpl) GetAuthorities(ctx context.Context, creatorIDs []uint64) (map[uint64]*model.CreatorAuthority, error) {
	var rows []*model.CreatorAuthority
	err := s.db.WithContext(ctx).Where("creator_id IN ?", creatorIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]*model.CreatorAuthority, len(rows))
	for _, r := range rows {
		out[r.CreatorID] = r
	}
	return out, nil
}

// IncrementEngagement 将暂存计数累加进累计信号行，不存在时插入
func (s *SignalRepoImpl) IncrementEngagement(ctx context.Context, storyID uint64, views, completions, replays int64) error {
	engagement := &model.StoryEngagement{
		StoryID:     storyID,
		TotalViews:  views,
		Completions: completions,
		ReplayUsers: replays,
		UpdatedAt:   time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "story_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_views":  gorm.Expr("total_views + ?", views),
			"completions":  gorm.Expr("completions + ?", completions),
			"replay_users": gorm.Expr("replay_users + ?", replays),
			"updated_at":   time.Now(),
		}),
	}).Create(engagement).Error
}

func (s *SignalRepoImpl) UpsertVelocity(ctx context.Context, velocity *model.StoryVelocity) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}},
		UpdateAll: true,
	}).Create(velocity).Error
}

func (s *SignalRepoImpl) UpsertAuthority(ctx context.Context, authority *model.CreatorAuthority) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "creator_id"}},
		UpdateAll: true,
	}).Create(authority).Error
}

// GetCreatorCompletionRates 按创作者聚合完播率，信誉信号重算使用
func (s *SignalRepoImpl) GetCreatorCompletionRates(ctx context.Context) (map[uint64]float64, error) {
	type row struct {
		CreatorID   uint64
		Completions int64
		TotalViews  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("story_engagements").
		Select("stories.creator_id, SUM(story_engagements.completions) AS completions, SUM(story_engagements.total_views) AS total_views").
		Joins("JOIN stories ON stories.id = story_engagements.story_id").
		Group("stories.creator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]float64, len(rows))
	for _, r := range rows {
		if r.TotalViews > 0 {
			out[r.CreatorID] = float64(r.Completions) / float64(r.TotalViews)
		}
	}
	return out, nil
}
