package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/minio"
	"Splintr/internal/pkg/util"
	"Splintr/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type StoryService interface {
	CreateStory(ctx context.Context, creatorID uint64, req *dto.StoryBaseDTO) (*dto.StoryDTO, error)
	GetStory(ctx context.Context, viewerID uint64, sessionID string, storyID uint64) (*dto.StoryDTO, error)
	GetStoriesByCreator(ctx context.Context, creatorID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error)
	GetStoriesSelf(ctx context.Context, creatorID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error)
	DeleteStory(ctx context.Context, creatorID, storyID uint64) error
	UploadThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type storyServiceImpl struct {
	storyRepo       repository.StoryRepo
	likeRepo        repository.StoryLikeRepo
	signalRepo      repository.SignalRepo
	interactionRepo repository.InteractionRepo
}

func NewStoryService(
	storyRepo repository.StoryRepo,
	likeRepo repository.StoryLikeRepo,
	signalRepo repository.SignalRepo,
	interactionRepo repository.InteractionRepo,
) StoryService {
	return &storyServiceImpl{
		storyRepo:       storyRepo,
		likeRepo:        likeRepo,
		signalRepo:      signalRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *storyServiceImpl) CreateStory(ctx context.Context, creatorID uint64, req *dto.StoryBaseDTO) (*dto.StoryDTO, error) {
	now := time.Now()
	story := &model.Story{
		CreatorID:    creatorID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailKey,
		IsPremium:    req.IsPremium,
		TipEnabled:   req.TipEnabled,
		Status:       consts.StoryStatusPublished,
		PublishedAt:  &now,
	}
	tags := make([]*model.StoryTag, 0, len(req.Tags))
	for _, tag := range util.ExtractTags(req.Tags) {
		tags = append(tags, &model.StoryTag{Tag: tag})
	}

	if err := s.storyRepo.CreateStory(ctx, story, tags); err != nil {
		log.ErrorContext(ctx, "创建故事失败", "creator_id", creatorID, "err", err)
		return nil, UnExpectedError
	}
	return toStoryDTO(story, 0), nil
}

// GetStory 详情查询顺带记一次浏览：计数与交互流水都走旁路，失败不影响返回
func (s *storyServiceImpl) GetStory(ctx context.Context, viewerID uint64, sessionID string, storyID uint64) (*dto.StoryDTO, error) {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		log.ErrorContext(ctx, "查询故事失败", "story_id", storyID, "err", err)
		return nil, UnExpectedError
	}
	if story == nil || story.Status != consts.StoryStatusPublished {
		return nil, ErrStoryNotFound
	}

	likeCount, err := s.likeRepo.GetLikeCountByStoryID(ctx, storyID)
	if err != nil {
		log.WarnContext(ctx, "查询点赞数失败", "story_id", storyID, "err", err)
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.storyRepo.IncrementViewCount(bgCtx, storyID, 1); err != nil {
			log.Warn("浏览计数失败", "story_id", storyID, "err", err)
		}
		if viewerID > 0 || sessionID != "" {
			it := &model.UserInteraction{
				UserID:    viewerID,
				StoryID:   storyID,
				Type:      model.InteractionView,
				SessionID: sessionID,
			}
			if err := s.interactionRepo.CreateInteraction(bgCtx, it); err != nil {
				log.Warn("浏览流水写入失败", "story_id", storyID, "err", err)
			}
		}
	}()

	return toStoryDTO(story, likeCount), nil
}

func (s *storyServiceImpl) GetStoriesByCreator(ctx context.Context, creatorID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error) {
	return s.listStories(ctx, page, pageSize, func(limit, offset int) ([]*model.Story, error) {
		return s.storyRepo.GetStoriesByCreator(ctx, creatorID, limit, offset)
	})
}

func (s *storyServiceImpl) GetStoriesSelf(ctx context.Context, creatorID uint64, page, pageSize int) (*dto.StoryWaterfallDTO, error) {
	return s.listStories(ctx, page, pageSize, func(limit, offset int) ([]*model.Story, error) {
		return s.storyRepo.GetStoriesSelf(ctx, creatorID, limit, offset)
	})
}

func (s *storyServiceImpl) listStories(ctx context.Context, page, pageSize int, query func(limit, offset int) ([]*model.Story, error)) (*dto.StoryWaterfallDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	stories, err := query(pageSize+1, (page-1)*pageSize)
	if err != nil {
		log.ErrorContext(ctx, "查询故事列表失败", "err", err)
		return nil, UnExpectedError
	}
	hasMore := len(stories) > pageSize
	if hasMore {
		stories = stories[:pageSize]
	}

	storyIDs := make([]uint64, 0, len(stories))
	for _, st := range stories {
		storyIDs = append(storyIDs, st.ID)
	}
	likeCounts, err := s.signalRepo.GetLikeCounts(ctx, storyIDs)
	if err != nil {
		log.WarnContext(ctx, "点赞数查询失败", "err", err)
		likeCounts = nil
	}
	return &dto.StoryWaterfallDTO{List: toStoryDTOs(stories, likeCounts), HasMore: hasMore}, nil
}

func (s *storyServiceImpl) DeleteStory(ctx context.Context, creatorID, storyID uint64) error {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		log.ErrorContext(ctx, "查询故事失败", "story_id", storyID, "err", err)
		return UnExpectedError
	}
	if story == nil {
		return ErrStoryNotFound
	}
	if story.CreatorID != creatorID {
		return ErrStoryNotOwned
	}
	if err := s.storyRepo.DeleteStory(ctx, storyID); err != nil {
		log.ErrorContext(ctx, "下架故事失败", "story_id", storyID, "err", err)
		return UnExpectedError
	}
	return nil
}

var allowedThumbnailExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// UploadThumbnail 上传封面图，返回对象存储内的Key
func (s *storyServiceImpl) UploadThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedThumbnailExt[ext]; !ok {
		return "", ErrFileNotSupported
	}

	src, err := file.Open()
	if err != nil {
		log.ErrorContext(ctx, "读取上传文件失败", "err", err)
		return "", UnExpectedError
	}
	defer src.Close()

	objectName := fmt.Sprintf("thumbnails/%s%s", uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")
	key, err := minio.UploadFile(ctx, objectName, src, file.Size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "上传封面失败", "err", err)
		return "", UnExpectedError
	}
	return key, nil
}
