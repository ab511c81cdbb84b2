package repository

import (
	"Splintr/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.UserFollow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint64) error
	CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error)
	GetFollowerCounts(ctx context.Context) (map[uint64]int64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db}
}

func (s *UserFollowRepoImpl) CreateFollow(ctx context.Context, follow *model.UserFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *UserFollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{}).Error
}

func (s *UserFollowRepoImpl) CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var followingIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &followingIDs).Error
	return followingIDs, err
}

// GetFollowerCounts 全量粉丝数统计，信誉信号重算使用
func (s *UserFollowRepoImpl) GetFollowerCounts(ctx context.Context) (map[uint64]int64, error) {
	type row struct {
		FollowingID uint64
		Count       int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Select("following_id, COUNT(*) AS count").
		Group("following_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		out[r.FollowingID] = r.Count
	}
	return out, nil
}
