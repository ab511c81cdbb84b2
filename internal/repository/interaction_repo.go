package repository

import (
	"Splintr/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// InteractionRepo 交互流水：兴趣画像与协同过滤信号的数据源
type InteractionRepo interface {
	CreateInteraction(ctx context.Context, interaction *model.UserInteraction) error
	GetRecentByUser(ctx context.Context, userID uint64, since time.Time, limit int) ([]*model.UserInteraction, error)
	GetTagsForStories(ctx context.Context, storyIDs []uint64) (map[uint64][]string, error)
	GetCoEngagedUserIDs(ctx context.Context, seedStoryIDs []uint64, excludeUserID uint64, limit int) ([]uint64, error)
	CountCoEngagements(ctx context.Context, userIDs []uint64, storyIDs []uint64) (map[uint64]int64, error)
	GetTypeCountsSince(ctx context.Context, since time.Time) (map[uint64]map[string]int64, error)
}

type InteractionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &InteractionRepoImpl{db}
}

func (s *InteractionRepoImpl) CreateInteraction(ctx context.Context, interaction *model.UserInteraction) error {
	return s.db.WithContext(ctx).Create(interaction).Error
}

func (s *InteractionRepoImpl) GetRecentByUser(ctx context.Context, userID uint64, since time.Time, limit int) ([]*model.UserInteraction, error) {
	var interactions []*model.UserInteraction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&interactions).Error
	return interactions, err
}

func (s *InteractionRepoImpl) GetTagsForStories(ctx context.Context, storyIDs []uint64) (map[uint64][]string, error) {
	var rows []*model.StoryTag
	err := s.db.WithContext(ctx).Where("story_id IN ?", storyIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64][]string)
	for _, r := range rows {
		out[r.StoryID] = append(out[r.StoryID], r.Tag)
	}
	return out, nil
}

// GetCoEngagedUserIDs 找出与目标用户交互过相同种子故事的其他用户，限量采样
func (s *InteractionRepoImpl) GetCoEngagedUserIDs(ctx context.Context, seedStoryIDs []uint64, excludeUserID uint64, limit int) ([]uint64, error) {
	var userIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.UserInteraction{}).
		Where("story_id IN ? AND user_id <> ?", seedStoryIDs, excludeUserID).
		Limit(limit).
		Distinct().
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// CountCoEngagements 候选故事 × 共同交互用户的去重计数
func (s *InteractionRepoImpl) CountCoEngagements(ctx context.Context, userIDs []uint64, storyIDs []uint64) (map[uint64]int64, error) {
	type row struct {
		StoryID uint64
		Count   int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.UserInteraction{}).
		Select("story_id, COUNT(DISTINCT user_id) AS count").
		Where("user_id IN ? AND story_id IN ?", userIDs, storyIDs).
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

// GetTypeCountsSince 窗口内按故事与交互类型统计，滑窗信号重算使用
func (s *InteractionRepoImpl) GetTypeCountsSince(ctx context.Context, since time.Time) (map[uint64]map[string]int64, error) {
	type row struct {
		StoryID uint64
		Type    string
		Count   int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.UserInteraction{}).
		Select("story_id, type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("story_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]map[string]int64)
	for _, r := range rows {
		if out[r.StoryID] == nil {
			out[r.StoryID] = make(map[string]int64)
		}
		out[r.StoryID][r.Type] = r.Count
	}
	return out, nil
}
