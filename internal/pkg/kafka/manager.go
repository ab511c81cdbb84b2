package kafka

import (
	"Splintr/internal/api/config"
	"Splintr/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	playbackConsumer sarama.ConsumerGroup
	playbackHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, interactionRepo repository.InteractionRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	playbackConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPlaybackConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	playbackHandler := NewPlaybackHandler(interactionRepo)

	return &ConsumerManager{
		playbackConsumer: playbackConsumer,
		playbackHandler:  playbackHandler,
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaPlaybackConsumer.Topic
		log.Info("playback consumer started", "topic", topic)
		for {
			if err := m.playbackConsumer.Consume(ctx, []string{topic}, m.playbackHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.playbackConsumer.Close(); err != nil {
		log.Error("Failed to close playback consumer", "err", err)
	}

	return nil
}
