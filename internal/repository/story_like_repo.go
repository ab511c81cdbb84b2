package repository

import (
	"Splintr/internal/model"
	"context"

	"gorm.io/gorm"
)

type StoryLikeRepo interface {
	CreateLike(ctx context.Context, like *model.StoryLike) error
	DeleteLike(ctx context.Context, userID, storyID uint64) error
	CheckLikeExists(ctx context.Context, userID, storyID uint64) (bool, error)
	GetLikeCountByStoryID(ctx context.Context, storyID uint64) (int64, error)
}

type StoryLikeRepoImpl struct {
	db *gorm.DB
}

func NewStoryLikeRepo(db *gorm.DB) StoryLikeRepo {
	return &StoryLikeRepoImpl{db}
}

func (s *StoryLikeRepoImpl) CreateLike(ctx context.Context, like *model.StoryLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *StoryLikeRepoImpl) DeleteLike(ctx context.Context, userID, storyID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&model.StoryLike{}).Error
}

func (s *StoryLikeRepoImpl) CheckLikeExists(ctx context.Context, userID, storyID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.StoryLike{}).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Count(&count).Error
	return count > 0, err
}

func (s *StoryLikeRepoImpl) GetLikeCountByStoryID(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.StoryLike{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}
