package notifications

import (
	"context"
	"fmt"
	"time"

	"streakconnect/internal/tickets"
	"streakconnect/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ProducerConfig contains configuration for the Kafka ticket event producer.
type ProducerConfig struct {
	Brokers     []string
	TicketTopic string
	RetryMax    int
	TimeoutMs   int
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:     []string{"localhost:9092"},
		TicketTopic: "ticket-notifications",
		RetryMax:    3,
		TimeoutMs:   10000,
	}
}

// KafkaPublisher publishes reservation events to Kafka. It satisfies the
// publisher contract the tickets service calls after every stock change.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

var _ tickets.NotificationPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(config *ProducerConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps a member's events ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}, nil
}

func (p *KafkaPublisher) PublishReservationConfirmed(ctx context.Context, ticket *tickets.Ticket) error {
	event := &TicketEvent{
		Kind:          TicketEventConfirmed,
		LiveID:        ticket.LiveID,
		MemberID:      ticket.MemberID,
		TicketID:      ticket.ID,
		ReservationNo: ticket.ReservationNo,
		TotalCount:    ticket.TotalCount,
		OccurredAt:    time.Now(),
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) PublishReservationCancelled(ctx context.Context, liveID uuid.UUID, memberID string, released int) error {
	event := &TicketEvent{
		Kind:       TicketEventCancelled,
		LiveID:     liveID,
		MemberID:   memberID,
		Released:   released,
		OccurredAt: time.Now(),
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event *TicketEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.TicketTopic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(event.Kind)},
			{Key: []byte("live_id"), Value: []byte(event.LiveID.String())},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send ticket event to Kafka: %w", err)
	}

	p.log.InfoContext(ctx, "Ticket event published",
		"topic", p.config.TicketTopic,
		"partition", partition,
		"offset", offset,
		"kind", string(event.Kind),
		"member_id", event.MemberID,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}
