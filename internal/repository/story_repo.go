package repository

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type StoryRepo interface {
	CreateStory(ctx context.Context, story *model.Story, tags []*model.StoryTag) error
	GetStory(ctx context.Context, id uint64) (*model.Story, error)
	GetStoryByIds(ctx context.Context, ids []uint64) ([]*model.Story, error)
	GetPublishedStories(ctx context.Context, limit int) ([]*model.Story, error)
	GetStoriesByCreator(ctx context.Context, creatorID uint64, limit, offset int) ([]*model.Story, error)
	GetStoriesSelf(ctx context.Context, creatorID uint64, limit, offset int) ([]*model.Story, error)
	GetStoriesByCreators(ctx context.Context, creatorIDs []uint64, limit, offset int) ([]*model.Story, error)
	UpdateStoryStatus(ctx context.Context, id uint64, status int8) error
	IncrementViewCount(ctx context.Context, id uint64, delta int64) error
	DeleteStory(ctx context.Context, id uint64) error
}

type StoryRepoImpl struct {
	db *gorm.DB
}

func NewStoryRepo(db *gorm.DB) StoryRepo {
	return &StoryRepoImpl{db}
}

func (s *StoryRepoImpl) CreateStory(ctx context.Context, story *model.Story, tags []*model.StoryTag) error {
	if len(tags) == 0 {
		return s.db.WithContext(ctx).Create(story).Error
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(story).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag.StoryID = story.ID
		}
		return tx.Create(tags).Error
	})
}

func (s *StoryRepoImpl) GetStory(ctx context.Context, id uint64) (*model.Story, error) {
	var story model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").First(&story, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &story, nil
}

func (s *StoryRepoImpl) GetStoryByIds(ctx context.Context, ids []uint64) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").
		Where("id IN ?", ids).
		Find(&stories).Error
	return stories, err
}

// GetPublishedStories 候选池查询：仅已发布，按发布时间倒序，截断到 limit
func (s *StoryRepoImpl) GetPublishedStories(ctx context.Context, limit int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").
		Where("status = ?", consts.StoryStatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Find(&stories).Error
	return stories, err
}

func (s *StoryRepoImpl) GetStoriesByCreator(ctx context.Context, creatorID uint64, limit, offset int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").
		Where("creator_id = ? AND status = ?", creatorID, consts.StoryStatusPublished).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	return stories, err
}

// GetStoriesSelf 创作者查看自己的故事，不过滤状态
func (s *StoryRepoImpl) GetStoriesSelf(ctx context.Context, creatorID uint64, limit, offset int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	return stories, err
}

func (s *StoryRepoImpl) GetStoriesByCreators(ctx context.Context, creatorIDs []uint64, limit, offset int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).Preload("Creator").Preload("Tags").
		Where("creator_id IN ? AND status = ?", creatorIDs, consts.StoryStatusPublished).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	return stories, err
}

func (s *StoryRepoImpl) UpdateStoryStatus(ctx context.Context, id uint64, status int8) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *StoryRepoImpl) IncrementViewCount(ctx context.Context, id uint64, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

func (s *StoryRepoImpl) DeleteStory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		Update("status", consts.StoryStatusRemoved).Error
}
