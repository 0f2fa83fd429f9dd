package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/application/service"
	"github.com/minhtran/feedgram/internal/config"
	"github.com/minhtran/feedgram/pkg/logger"
)

const (
	TopicPostEvents   = "post.events"
	TopicFollowEvents = "follow.events"
)

type KafkaProducerClient struct {
	PostEventsWriter   *kafka.Writer
	FollowEventsWriter *kafka.Writer
	logger             logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	postWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	followWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicFollowEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		PostEventsWriter:   postWriter,
		FollowEventsWriter: followWriter,
		logger:             log,
	}, nil
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, e service.PostEvent) {
	c.publish(ctx, c.PostEventsWriter, strconv.FormatInt(e.PostID, 10), e)
}

func (c *KafkaProducerClient) PublishFollowEvent(ctx context.Context, e service.FollowEvent) {
	c.publish(ctx, c.FollowEventsWriter, strconv.FormatInt(e.FollowerID, 10), e)
}

// publish is fire-and-forget: a broker hiccup is logged, never surfaced to
// the request that produced the event.
func (c *KafkaProducerClient) publish(ctx context.Context, w *kafka.Writer, key string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to marshal event", err, zap.String("topic", w.Topic))
		return
	}

	err = w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
	if err != nil {
		c.logger.Error("failed to publish event", err, zap.String("topic", w.Topic))
	}
}

func (c *KafkaProducerClient) Close() {
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
	if c.FollowEventsWriter != nil {
		c.FollowEventsWriter.Close()
	}
}
