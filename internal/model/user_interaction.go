package model

import (
	"time"
)

const (
	InteractionView     = "view"
	InteractionLike     = "like"
	InteractionComplete = "complete"
	InteractionReplay   = "replay"
	InteractionShare    = "share"
	InteractionComment  = "comment"
)

// UserInteraction 观看者与故事的单次交互，协同过滤与兴趣画像的数据源
type UserInteraction struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"user_id"`
	StoryID   uint64    `gorm:"not null;index:idx_story_id" json:"story_id"`
	Type      string    `gorm:"type:varchar(16);not null" json:"type"`
	SessionID string    `gorm:"type:varchar(64)" json:"session_id"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2" json:"created_at"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
