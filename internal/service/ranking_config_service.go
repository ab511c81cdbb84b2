package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/redis"
	"Splintr/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

type RankingConfigService interface {
	GetWeights(ctx context.Context, variant string) *model.RankingWeights
	GetConfig(ctx context.Context, variant string) (*dto.RankingConfigDTO, error)
	UpdateConfig(ctx context.Context, req *dto.UpdateRankingConfigDTO) error
}

type rankingConfigServiceImpl struct {
	configRepo repository.RankingConfigRepo
	cacheTTL   time.Duration
}

func NewRankingConfigService(configRepo repository.RankingConfigRepo, cacheTTL time.Duration) RankingConfigService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &rankingConfigServiceImpl{configRepo: configRepo, cacheTTL: cacheTTL}
}

// DefaultWeights 内置兜底权重，配置缺失或读取失败时整组生效
func DefaultWeights(variant string) *model.RankingWeights {
	w := model.RankingWeights{
		Completion:           1.0,
		Likes:                0.8,
		Recency:              0.8,
		Replay:               0.5,
		Velocity:             0.6,
		Authority:            0.4,
		FollowBoost:          0.3,
		FreshnessWindowHours: 72,
		CFEnabled:            true,
		CFMaxBoost:           0.3,
		PerCreatorMax:        2,
	}
	if variant == consts.VariantB {
		// B 组实验：降低完播权重，抬高短期热度
		w.Completion = 0.6
		w.Velocity = 1.0
	}
	return &w
}

// GetWeights 读取指定分组的生效权重：缓存 -> 库 -> 内置默认，永不失败
func (s *rankingConfigServiceImpl) GetWeights(ctx context.Context, variant string) *model.RankingWeights {
	if cached := s.readCache(ctx, variant); cached != nil {
		return cached
	}

	cfg, err := s.configRepo.GetByKeyVariant(ctx, consts.FeedConfigKey, variant)
	if err != nil {
		log.WarnContext(ctx, "加载排序配置失败，使用默认权重", "variant", variant, "err", err)
		return DefaultWeights(variant)
	}
	if cfg == nil {
		return DefaultWeights(variant)
	}

	s.writeCache(ctx, variant, &cfg.Weights)
	return &cfg.Weights
}

func (s *rankingConfigServiceImpl) GetConfig(ctx context.Context, variant string) (*dto.RankingConfigDTO, error) {
	if variant != consts.VariantA && variant != consts.VariantB {
		return nil, ErrVariantInvalid
	}

	cfg, err := s.configRepo.GetByKeyVariant(ctx, consts.FeedConfigKey, variant)
	if err != nil {
		log.ErrorContext(ctx, "查询排序配置失败", "variant", variant, "err", err)
		return nil, UnExpectedError
	}
	if cfg == nil {
		return &dto.RankingConfigDTO{
			Variant:  variant,
			Weights:  *DefaultWeights(variant),
			IsActive: true,
			Source:   "default",
		}, nil
	}
	return &dto.RankingConfigDTO{
		Variant:  cfg.Variant,
		Weights:  cfg.Weights,
		IsActive: cfg.IsActive,
		Source:   "stored",
	}, nil
}

func (s *rankingConfigServiceImpl) UpdateConfig(ctx context.Context, req *dto.UpdateRankingConfigDTO) error {
	cfg := &model.RankingConfig{
		ConfigKey: consts.FeedConfigKey,
		Variant:   req.Variant,
		Weights:   req.Weights,
		IsActive:  req.IsActive,
		UpdatedAt: time.Now(),
	}
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		log.ErrorContext(ctx, "写入排序配置失败", "variant", req.Variant, "err", err)
		return UnExpectedError
	}

	// 当次写入后立即失效缓存，下一请求读到新权重
	if redis.GetRdbClient() != nil {
		if err := redis.DeleteKey(ctx, consts.FeedWeightsKey+req.Variant); err != nil {
			log.WarnContext(ctx, "失效权重缓存失败", "variant", req.Variant, "err", err)
		}
	}
	return nil
}

func (s *rankingConfigServiceImpl) readCache(ctx context.Context, variant string) *model.RankingWeights {
	if redis.GetRdbClient() == nil {
		return nil
	}
	raw, err := redis.GetValue(ctx, consts.FeedWeightsKey+variant)
	if err != nil || raw == "" {
		return nil
	}
	var w model.RankingWeights
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		log.WarnContext(ctx, "权重缓存解析失败", "variant", variant, "err", err)
		return nil
	}
	return &w
}

func (s *rankingConfigServiceImpl) writeCache(ctx context.Context, variant string, w *model.RankingWeights) {
	if redis.GetRdbClient() == nil {
		return
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := redis.SetWithExpiration(ctx, consts.FeedWeightsKey+variant, raw, s.cacheTTL); err != nil {
		log.WarnContext(ctx, "写入权重缓存失败", "variant", variant, "err", err)
	}
}
