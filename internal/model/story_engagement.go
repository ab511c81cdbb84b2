package model

import (
	"time"
)

// StoryEngagement 累计播放信号，每条故事一行，由消费端异步回填
type StoryEngagement struct {
	StoryID     uint64    `gorm:"primaryKey" json:"story_id"`
	TotalViews  int64     `gorm:"not null;default:0" json:"total_views"`
	Completions int64     `gorm:"not null;default:0" json:"completions"`
	ReplayUsers int64     `gorm:"not null;default:0" json:"replay_users"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (StoryEngagement) TableName() string {
	return "story_engagements"
}
