package model

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_username" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Nickname     string    `gorm:"type:varchar(64)" json:"nickname"`
	AvatarURL    string    `gorm:"type:varchar(512)" json:"avatar_url"`
	Role         string    `gorm:"type:varchar(16);not null;default:USER" json:"role"` // USER / ADMIN
	IsBanned     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
