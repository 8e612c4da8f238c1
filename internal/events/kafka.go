package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/config"
	"github.com/flouswise/finance/internal/logger"
)

const flushTimeout = 5 * time.Second

// configMap builds the librdkafka settings shared by producer and consumer.
func configMap(cfg config.KafkaConfig) *kafka.ConfigMap {
	cm := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"security.protocol": cfg.SecurityProtocol,
	}
	if cfg.SASLUsername != "" {
		_ = cm.SetKey("sasl.mechanisms", "PLAIN")
		_ = cm.SetKey("sasl.username", cfg.SASLUsername)
		_ = cm.SetKey("sasl.password", cfg.SASLPassword)
	}
	return cm
}

type producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Events() chan kafka.Event
	Flush(timeoutMs int) int
	Close()
}

// KafkaPublisher publishes profile events keyed by user id.
type KafkaPublisher struct {
	producer producer
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(configMap(cfg))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	logger.Info("Kafka producer initialized", "bootstrap_servers", cfg.BootstrapServers)
	return newKafkaPublisher(p), nil
}

func newKafkaPublisher(p producer) *KafkaPublisher {
	pub := &KafkaPublisher{producer: p}
	go pub.logDeliveries()
	return pub
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ProfileEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	topic := Topic(event.EventType)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UserID),
		Value:          payload,
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	logger.FromContext(ctx).Debug("event queued", "topic", topic, "event_id", event.EventID)
	return nil
}

// logDeliveries drains delivery reports until the producer is closed.
func (p *KafkaPublisher) logDeliveries() {
	for e := range p.producer.Events() {
		msg, ok := e.(*kafka.Message)
		if !ok {
			continue
		}
		if msg.TopicPartition.Error != nil {
			logger.Error("event delivery failed",
				"topic", *msg.TopicPartition.Topic,
				"key", string(msg.Key),
				"error", msg.TopicPartition.Error,
			)
			continue
		}
		logger.Debug("event delivered",
			"topic", *msg.TopicPartition.Topic,
			"partition", msg.TopicPartition.Partition,
			"offset", msg.TopicPartition.Offset.String(),
		)
	}
}

func (p *KafkaPublisher) Close() {
	if remaining := p.producer.Flush(int(flushTimeout.Milliseconds())); remaining > 0 {
		logger.Warn("kafka producer closed with undelivered events", "count", remaining)
	}
	p.producer.Close()
}

// UserLifecycleHandler reacts to user lifecycle events.
type UserLifecycleHandler interface {
	EnsureProfile(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

type reader interface {
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	Close() error
}

// Consumer applies user.registered and user.deleted events to profiles.
type Consumer struct {
	reader  reader
	handler UserLifecycleHandler
	poll    time.Duration
}

func NewConsumer(cfg config.KafkaConfig, handler UserLifecycleHandler) (*Consumer, error) {
	cm := configMap(cfg)
	_ = cm.SetKey("group.id", cfg.GroupID)
	_ = cm.SetKey("auto.offset.reset", "earliest")
	_ = cm.SetKey("session.timeout.ms", "45000")

	c, err := kafka.NewConsumer(cm)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return newConsumer(c, handler), nil
}

func newConsumer(r reader, handler UserLifecycleHandler) *Consumer {
	return &Consumer{reader: r, handler: handler, poll: 500 * time.Millisecond}
}

// Run subscribes and processes messages until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	topics := []string{TopicUserRegistered, TopicUserDeleted}
	if err := c.reader.SubscribeTopics(topics, nil); err != nil {
		return fmt.Errorf("subscribe to %v: %w", topics, err)
	}
	logger.Info("Kafka consumer started", "topics", topics)

	defer func() {
		if err := c.reader.Close(); err != nil {
			logger.Error("failed to close kafka consumer", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msg, err := c.reader.ReadMessage(c.poll)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.Code() == kafka.ErrTimedOut {
				continue
			}
			logger.Error("consumer error", "error", err)
			continue
		}

		topic := ""
		if msg.TopicPartition.Topic != nil {
			topic = *msg.TopicPartition.Topic
		}
		if err := c.Handle(ctx, topic, msg.Value); err != nil {
			logger.Error("failed to process event", "topic", topic, "error", err)
		}
	}
}

// Handle applies a single message. Malformed payloads are reported and skipped.
func (c *Consumer) Handle(ctx context.Context, topic string, value []byte) error {
	var event UserEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode %s event: %w", topic, err)
	}
	if event.UserID == "" {
		return fmt.Errorf("%s event without userId", topic)
	}

	ctx = logger.WithUserID(ctx, event.UserID)
	log := logger.FromContext(ctx)

	switch topic {
	case TopicUserRegistered:
		if err := c.handler.EnsureProfile(ctx, event.UserID); err != nil {
			return fmt.Errorf("ensure profile: %w", err)
		}
		log.Info("profile shell ensured for registered user")
	case TopicUserDeleted:
		err := c.handler.Delete(ctx, event.UserID)
		if errors.Is(err, apperror.ErrProfileNotFound) {
			log.Info("deleted user had no profile")
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		log.Info("profile deleted for removed user")
	default:
		log.Warn("ignoring event from unexpected topic", "topic", topic)
	}
	return nil
}
