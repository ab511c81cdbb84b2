package model

import (
	"time"
)

type Story struct {
	ID           uint64     `gorm:"primaryKey"`
	CreatorID    uint64     `gorm:"not null;index:idx_creator_id" json:"creator_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:varchar(1000)" json:"description"`
	Category     string     `gorm:"type:varchar(64);index:idx_category" json:"category"`
	ThumbnailURL string     `gorm:"type:varchar(512)" json:"thumbnail_url"`
	IsPremium    bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_premium"`
	TipEnabled   bool       `gorm:"type:tinyint(1);not null;default:0" json:"tip_enabled"`
	ViewCount    int64      `gorm:"not null;default:0" json:"view_count"`
	Status       int8       `gorm:"not null;default:0;index:idx_status_published,priority:1" json:"status"` // 0:草稿, 1:已发布, 2:已下架
	PublishedAt  *time.Time `gorm:"index:idx_status_published,priority:2" json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联关系
	Creator User       `gorm:"foreignKey:CreatorID;references:ID"`
	Tags    []StoryTag `gorm:"foreignKey:StoryID;references:ID"`
}

func (Story) TableName() string {
	return "stories"
}

type StoryTag struct {
	ID      uint64 `gorm:"primaryKey"`
	StoryID uint64 `gorm:"not null;index:idx_story_id" json:"story_id"`
	Tag     string `gorm:"type:varchar(64);not null;index:idx_tag" json:"tag"`
}

func (StoryTag) TableName() string {
	return "story_tags"
}
