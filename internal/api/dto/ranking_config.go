package dto

import "Splintr/internal/model"

// RankingConfigDTO 排序权重配置
type RankingConfigDTO struct {
	Variant  string               `json:"variant"`
	Weights  model.RankingWeights `json:"weights"`
	IsActive bool                 `json:"is_active"`
	Source   string               `json:"source"`
}

// UpdateRankingConfigDTO 更新排序权重请求
type UpdateRankingConfigDTO struct {
	Variant  string               `json:"variant" binding:"required,oneof=A B"`
	Weights  model.RankingWeights `json:"weights" binding:"required"`
	IsActive bool                 `json:"is_active"`
}
