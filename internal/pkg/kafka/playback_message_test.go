package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

func TestToPlaybackEvent(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(`{"user_id":7,"story_id":42,"type":"complete","occurred_at":1700000000}`)}

	event, err := ToPlaybackEvent(msg)
	require.NoError(t, err)
	require.Equal(t, uint64(7), event.UserID)
	require.Equal(t, uint64(42), event.StoryID)
	require.Equal(t, "complete", event.Type)
}

func TestToPlaybackEventRejectsBadPayload(t *testing.T) {
	_, err := ToPlaybackEvent(&sarama.ConsumerMessage{Value: []byte(`not json`)})
	require.Error(t, err)

	_, err = ToPlaybackEvent(&sarama.ConsumerMessage{Value: []byte(`{"story_id":0,"type":"view"}`)})
	require.Error(t, err)

	_, err = ToPlaybackEvent(&sarama.ConsumerMessage{Value: []byte(`{"story_id":1,"type":"teleport"}`)})
	require.Error(t, err)
}
