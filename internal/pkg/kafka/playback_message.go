package kafka

import (
	"Splintr/internal/model"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// PlaybackEvent 播放端上报的单次交互事件
type PlaybackEvent struct {
	UserID     uint64 `json:"user_id"`
	SessionID  string `json:"session_id"`
	StoryID    uint64 `json:"story_id"`
	Type       string `json:"type"`
	OccurredAt int64  `json:"occurred_at"`
}

var validEventTypes = map[string]struct{}{
	model.InteractionView:     {},
	model.InteractionLike:     {},
	model.InteractionComplete: {},
	model.InteractionReplay:   {},
	model.InteractionShare:    {},
	model.InteractionComment:  {},
}

// ToPlaybackEvent 解析并校验播放事件，非法事件返回错误由调用方丢弃
func ToPlaybackEvent(msg *sarama.ConsumerMessage) (*PlaybackEvent, error) {
	var event PlaybackEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, errors.Wrap(err, "unmarshal playback event")
	}
	if event.StoryID == 0 {
		return nil, errors.New("playback event missing story_id")
	}
	if _, ok := validEventTypes[event.Type]; !ok {
		return nil, errors.Errorf("unknown playback event type: %s", event.Type)
	}
	return &event, nil
}
