package model

import (
	"time"
)

// CreatorAuthority 创作者信誉信号，按创作者维度聚合
type CreatorAuthority struct {
	CreatorID         uint64    `gorm:"primaryKey" json:"creator_id"`
	FollowerCount     int64     `gorm:"not null;default:0" json:"follower_count"`
	AvgCompletionRate float64   `gorm:"not null;default:0" json:"avg_completion_rate"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (CreatorAuthority) TableName() string {
	return "creator_authorities"
}
