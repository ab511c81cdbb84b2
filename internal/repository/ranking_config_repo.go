package repository

import (
	"Splintr/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankingConfigRepo interface {
	GetByKeyVariant(ctx context.Context, configKey, variant string) (*model.RankingConfig, error)
	Upsert(ctx context.Context, cfg *model.RankingConfig) error
}

type RankingConfigRepoImpl struct {
	db *gorm.DB
}

func NewRankingConfigRepo(db *gorm.DB) RankingConfigRepo {
	return &RankingConfigRepoImpl{db}
}

func (s *RankingConfigRepoImpl) GetByKeyVariant(ctx context.Context, configKey, variant string) (*model.RankingConfig, error) {
	var cfg model.RankingConfig
	err := s.db.WithContext(ctx).
		Where("config_key = ? AND variant = ? AND is_active = ?", configKey, variant, true).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (s *RankingConfigRepoImpl) Upsert(ctx context.Context, cfg *model.RankingConfig) error {
	cfg.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}, {Name: "variant"}},
		DoUpdates: clause.AssignmentColumns([]string{"weights", "is_active", "updated_at"}),
	}).Create(cfg).Error
}
