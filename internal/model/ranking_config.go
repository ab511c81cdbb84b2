package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// RankingConfig 排序权重配置，按 (config_key, variant) 唯一
type RankingConfig struct {
	ID        uint64         `gorm:"primaryKey"`
	ConfigKey string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_key_variant,priority:1" json:"config_key"`
	Variant   string         `gorm:"type:varchar(8);not null;uniqueIndex:idx_key_variant,priority:2" json:"variant"`
	Weights   RankingWeights `gorm:"type:json;not null" json:"weights"`
	IsActive  bool           `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (RankingConfig) TableName() string {
	return "ranking_configs"
}

// RankingWeights 打分公式的线性系数与多样性约束，整体作为 JSON 文档存储
type RankingWeights struct {
	Completion           float64 `json:"completion"`
	Likes                float64 `json:"likes"`
	Recency              float64 `json:"recency"`
	Replay               float64 `json:"replay"`
	Velocity             float64 `json:"velocity"`
	Authority            float64 `json:"authority"`
	FollowBoost          float64 `json:"follow_boost"`
	FreshnessWindowHours float64 `json:"freshness_window_hours"`
	CFEnabled            bool    `json:"cf_enabled"`
	CFMaxBoost           float64 `json:"cf_max_boost"`
	PerCreatorMax        int     `json:"per_creator_max"`
}

func (w RankingWeights) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *RankingWeights) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, w)
}
