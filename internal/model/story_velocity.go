package model

import (
	"time"
)

// StoryVelocity 48 小时滑动窗口内的短期活跃信号，由定时任务重算
type StoryVelocity struct {
	StoryID     uint64    `gorm:"primaryKey" json:"story_id"`
	Views48h    int64     `gorm:"column:views_48h;not null;default:0" json:"views_48h"`
	Likes48h    int64     `gorm:"column:likes_48h;not null;default:0" json:"likes_48h"`
	Comments48h int64     `gorm:"column:comments_48h;not null;default:0" json:"comments_48h"`
	Shares48h   int64     `gorm:"column:shares_48h;not null;default:0" json:"shares_48h"`
	Completes48h int64    `gorm:"column:completes_48h;not null;default:0" json:"completes_48h"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (StoryVelocity) TableName() string {
	return "story_velocities"
}
