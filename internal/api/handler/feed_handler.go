package handler

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/response"
	"Splintr/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// ForYou 个性化推荐流，登录与匿名都可访问
func (s *FeedHandler) ForYou(c *gin.Context) {
	userID := c.GetUint64("user_id")
	sessionID := c.GetHeader(consts.SessionHeader)

	var req dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.feedSvc.ForYou(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// Following 关注流，仅登录用户
func (s *FeedHandler) Following(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.feedSvc.Following(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
