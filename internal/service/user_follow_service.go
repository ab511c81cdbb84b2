package service

import (
	"Splintr/internal/model"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) error
	Unfollow(ctx context.Context, followerID, followingID uint64) error
}

type userFollowServiceImpl struct {
	followRepo repository.UserFollowRepo
	userRepo   repository.UserRepo
}

func NewUserFollowService(followRepo repository.UserFollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &userFollowServiceImpl{followRepo: followRepo, userRepo: userRepo}
}

func (s *userFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) error {
	if followerID == followingID {
		return ErrFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, followingID)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "user_id", followingID, "err", err)
		return UnExpectedError
	}
	if target == nil {
		return ErrUserNotFound
	}

	exist, err := s.followRepo.CheckFollowExists(ctx, followerID, followingID)
	if err != nil {
		log.ErrorContext(ctx, "查询关注状态失败", "err", err)
		return UnExpectedError
	}
	if exist {
		return ErrActionDuplicate
	}

	follow := &model.UserFollow{FollowerID: followerID, FollowingID: followingID}
	if err := s.followRepo.CreateFollow(ctx, follow); err != nil {
		log.ErrorContext(ctx, "写入关注失败", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userFollowServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) error {
	exist, err := s.followRepo.CheckFollowExists(ctx, followerID, followingID)
	if err != nil {
		log.ErrorContext(ctx, "查询关注状态失败", "err", err)
		return UnExpectedError
	}
	if !exist {
		return ErrFollowNotFound
	}
	if err := s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
		log.ErrorContext(ctx, "取消关注失败", "err", err)
		return UnExpectedError
	}
	return nil
}
