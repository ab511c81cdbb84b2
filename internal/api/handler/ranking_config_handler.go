package handler

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/pkg/response"
	"Splintr/internal/service"

	"github.com/gin-gonic/gin"
)

// RankingConfigHandler 排序权重管理接口，仅 ADMIN 可访问
type RankingConfigHandler struct {
	configSvc service.RankingConfigService
}

func NewRankingConfigHandler(configSvc service.RankingConfigService) *RankingConfigHandler {
	return &RankingConfigHandler{
		configSvc: configSvc,
	}
}

func (s *RankingConfigHandler) GetConfig(c *gin.Context) {
	variant := c.Param("variant")

	cfg, err := s.configSvc.GetConfig(c.Request.Context(), variant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cfg)
}

func (s *RankingConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateRankingConfigDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.configSvc.UpdateConfig(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
