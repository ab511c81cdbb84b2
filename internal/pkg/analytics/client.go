package analytics

import (
	"Splintr/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ExposureEvent 单条曝光上报
type ExposureEvent struct {
	ViewerID  uint64 `json:"viewer_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Variant   string `json:"variant"`
	StoryID   uint64 `json:"story_id"`
	Position  int    `json:"position"`
	Timestamp int64  `json:"timestamp"`
}

// Client 曝光分析上报客户端，URL 未配置时为空实现
type Client struct {
	http *resty.Client
	url  string
}

func NewClient(cfg config.AnalyticsConfig) *Client {
	if cfg.URL == "" {
		return &Client{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3
	}

	http := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(1)
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}

	return &Client{http: http, url: cfg.URL}
}

// Enabled 是否启用上报
func (s *Client) Enabled() bool {
	return s.http != nil
}

// PostExposures 批量上报曝光事件
func (s *Client) PostExposures(ctx context.Context, events []ExposureEvent) error {
	if !s.Enabled() || len(events) == 0 {
		return nil
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"exposures": events}).
		Post(s.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("analytics collector returned %d", resp.StatusCode())
	}
	return nil
}
