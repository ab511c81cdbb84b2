package model

import (
	"time"
)

// FeedExposure 曝光流水，只增不改；去重窗口的读取来源
type FeedExposure struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;default:0;index:idx_user_created,priority:1" json:"user_id"` // 0 表示匿名
	SessionID string    `gorm:"type:varchar(64);index:idx_session_created,priority:1" json:"session_id"`
	Variant   string    `gorm:"type:varchar(8);not null" json:"variant"`
	StoryID   uint64    `gorm:"not null" json:"story_id"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2;index:idx_session_created,priority:2" json:"created_at"`
}

func (FeedExposure) TableName() string {
	return "feed_exposures"
}
