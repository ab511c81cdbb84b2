package handler

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/pkg/consts"
	"Splintr/internal/pkg/response"
	"Splintr/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	storySvc service.StoryService
}

func NewStoryHandler(storySvc service.StoryService) *StoryHandler {
	return &StoryHandler{
		storySvc: storySvc,
	}
}

func (s *StoryHandler) CreateStory(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.StoryBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	story, err := s.storySvc.CreateStory(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

func (s *StoryHandler) GetStory(c *gin.Context) {
	userID := c.GetUint64("user_id")
	sessionID := c.GetHeader(consts.SessionHeader)

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return
	}

	story, err := s.storySvc.GetStory(c.Request.Context(), userID, sessionID, storyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

func (s *StoryHandler) GetStoriesByCreator(c *gin.Context) {
	creatorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return
	}

	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.storySvc.GetStoriesByCreator(c.Request.Context(), creatorID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StoryHandler) GetStoriesSelf(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PageQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.storySvc.GetStoriesSelf(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StoryHandler) DeleteStory(c *gin.Context) {
	userID := c.GetUint64("user_id")

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return
	}

	if err := s.storySvc.DeleteStory(c.Request.Context(), userID, storyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *StoryHandler) UploadThumbnail(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.BadRequest, "文件缺失")
		return
	}

	key, err := s.storySvc.UploadThumbnail(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"key": key})
}
