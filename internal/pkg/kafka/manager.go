package kafka

import (
	"Tianji/internal/api/config"
	"Tianji/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	subjectConsumer sarama.ConsumerGroup
	subjectHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	fortuneSvc service.FortuneService,
	matchSvc service.MatchService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	subjectConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaSubjectConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		subjectConsumer: subjectConsumer,
		subjectHandler:  NewSubjectHandler(fortuneSvc, matchSvc),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaSubjectConsumer.Topic
		log.Info("Subject consumer started", "topic", topic)
		for {
			if err := m.subjectConsumer.Consume(ctx, []string{topic}, m.subjectHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.subjectConsumer.Close(); err != nil {
		log.Error("Failed to close subject consumer", "err", err)
	}

	return nil
}
