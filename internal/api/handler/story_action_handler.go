package handler

import (
	"Splintr/internal/pkg/response"
	"Splintr/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StoryActionHandler struct {
	actionSvc service.StoryActionService
}

func NewStoryActionHandler(actionSvc service.StoryActionService) *StoryActionHandler {
	return &StoryActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *StoryActionHandler) Like(c *gin.Context) {
	userID := c.GetUint64("user_id")

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return
	}

	if err := s.actionSvc.LikeStory(c.Request.Context(), userID, storyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *StoryActionHandler) Unlike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return
	}

	if err := s.actionSvc.UnlikeStory(c.Request.Context(), userID, storyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
