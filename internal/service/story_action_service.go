package service

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
)

type StoryActionService interface {
	LikeStory(ctx context.Context, userID, storyID uint64) error
	UnlikeStory(ctx context.Context, userID, storyID uint64) error
}

type storyActionServiceImpl struct {
	storyRepo       repository.StoryRepo
	likeRepo        repository.StoryLikeRepo
	interactionRepo repository.InteractionRepo
}

func NewStoryActionService(
	storyRepo repository.StoryRepo,
	likeRepo repository.StoryLikeRepo,
	interactionRepo repository.InteractionRepo,
) StoryActionService {
	return &storyActionServiceImpl{
		storyRepo:       storyRepo,
		likeRepo:        likeRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *storyActionServiceImpl) LikeStory(ctx context.Context, userID, storyID uint64) error {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		log.ErrorContext(ctx, "查询故事失败", "story_id", storyID, "err", err)
		return UnExpectedError
	}
	if story == nil || story.Status != consts.StoryStatusPublished {
		return ErrStoryNotFound
	}

	exist, err := s.likeRepo.CheckLikeExists(ctx, userID, storyID)
	if err != nil {
		log.ErrorContext(ctx, "查询点赞状态失败", "err", err)
		return UnExpectedError
	}
	if exist {
		return ErrActionDuplicate
	}

	if err := s.likeRepo.CreateLike(ctx, &model.StoryLike{UserID: userID, StoryID: storyID}); err != nil {
		log.ErrorContext(ctx, "写入点赞失败", "err", err)
		return UnExpectedError
	}

	// 交互流水供画像与协同过滤回溯，失败不回滚点赞
	it := &model.UserInteraction{UserID: userID, StoryID: storyID, Type: model.InteractionLike}
	if err := s.interactionRepo.CreateInteraction(ctx, it); err != nil {
		log.WarnContext(ctx, "点赞流水写入失败", "err", err)
	}
	return nil
}

func (s *storyActionServiceImpl) UnlikeStory(ctx context.Context, userID, storyID uint64) error {
	exist, err := s.likeRepo.CheckLikeExists(ctx, userID, storyID)
	if err != nil {
		log.ErrorContext(ctx, "查询点赞状态失败", "err", err)
		return UnExpectedError
	}
	if !exist {
		return ErrLikeNotFound
	}
	if err := s.likeRepo.DeleteLike(ctx, userID, storyID); err != nil {
		log.ErrorContext(ctx, "取消点赞失败", "err", err)
		return UnExpectedError
	}
	return nil
}
