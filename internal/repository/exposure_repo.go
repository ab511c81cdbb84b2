package repository

import (
	"Splintr/internal/model"
	"Splintr/internal/pkg/util"
	"context"
	"time"

	"gorm.io/gorm"
)

// ExposureRepo 曝光流水的写入与去重窗口查询
type ExposureRepo interface {
	CreateBatch(ctx context.Context, exposures []*model.FeedExposure) error
	GetExposedStoryIDs(ctx context.Context, identity util.Identity, since time.Time) ([]uint64, error)
	GetCreatorExposureCounts(ctx context.Context, identity util.Identity, since time.Time) (map[uint64]int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type ExposureRepoImpl struct {
	db *gorm.DB
}

func NewExposureRepo(db *gorm.DB) ExposureRepo {
	return &ExposureRepoImpl{db}
}

func (s *ExposureRepoImpl) CreateBatch(ctx context.Context, exposures []*model.FeedExposure) error {
	if len(exposures) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(exposures).Error
}

func (s *ExposureRepoImpl) identityScope(identity util.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if identity.ViewerID > 0 {
			return db.Where("user_id = ?", identity.ViewerID)
		}
		return db.Where("session_id = ?", identity.SessionID)
	}
}

func (s *ExposureRepoImpl) GetExposedStoryIDs(ctx context.Context, identity util.Identity, since time.Time) ([]uint64, error) {
	if identity.IsAnonymous() {
		return nil, nil
	}

	var storyIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.FeedExposure{}).
		Scopes(s.identityScope(identity)).
		Where("created_at >= ?", since).
		Distinct().
		Pluck("story_id", &storyIDs).Error
	return storyIDs, err
}

// GetCreatorExposureCounts 近期窗口内按创作者统计曝光次数
func (s *ExposureRepoImpl) GetCreatorExposureCounts(ctx context.Context, identity util.Identity, since time.Time) (map[uint64]int, error) {
	if identity.IsAnonymous() {
		return map[uint64]int{}, nil
	}

	type row struct {
		CreatorID uint64
		Count     int
	}
	var rows []row
	err := s.db.WithContext(ctx).Table("feed_exposures").
		Select("stories.creator_id, COUNT(*) AS count").
		Joins("JOIN stories ON stories.id = feed_exposures.story_id").
		Scopes(s.identityScope(identity)).
		Where("feed_exposures.created_at >= ?", since).
		Group("stories.creator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]int, len(rows))
	for _, r := range rows {
		out[r.CreatorID] = r.Count
	}
	return out, nil
}

func (s *ExposureRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.FeedExposure{})
	return result.RowsAffected, result.Error
}
