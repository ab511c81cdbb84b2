package model

import (
	"time"
)

type StoryLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	StoryID   uint64    `gorm:"primaryKey;index:idx_story_id" json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (StoryLike) TableName() string {
	return "story_likes"
}
