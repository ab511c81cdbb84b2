package service

import (
	"Splintr/internal/api/dto"
	"Splintr/internal/model"
	"Splintr/internal/pkg/minio"
	"fmt"

	"github.com/jinzhu/copier"
)

func toStoryDTO(story *model.Story, likeCount int64) *dto.StoryDTO {
	d := &dto.StoryDTO{}
	_ = copier.Copy(d, story)

	d.CreatorID = story.CreatorID
	d.LikeCount = likeCount
	d.ThumbnailURL = minio.GetPublicURL(story.ThumbnailURL)
	if story.PublishedAt != nil {
		d.PublishedAt = story.PublishedAt.Format("2006-01-02 15:04:05")
	}

	d.Nickname = story.Creator.Nickname
	if d.Nickname == "" {
		d.Nickname = fmt.Sprintf("用户_%d", story.CreatorID)
	}
	d.AvatarURL = story.Creator.AvatarURL

	d.Tags = make([]string, 0, len(story.Tags))
	for _, t := range story.Tags {
		d.Tags = append(d.Tags, t.Tag)
	}
	return d
}

func toStoryDTOs(stories []*model.Story, likeCounts map[uint64]int64) []*dto.StoryDTO {
	out := make([]*dto.StoryDTO, 0, len(stories))
	for _, story := range stories {
		out = append(out, toStoryDTO(story, likeCounts[story.ID]))
	}
	return out
}

func toUserDTO(user *model.User) *dto.UserDTO {
	d := &dto.UserDTO{}
	_ = copier.Copy(d, user)
	return d
}
