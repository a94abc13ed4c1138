package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"streakconnect/internal/tickets"
	"streakconnect/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer drains ticket events from Kafka and delivers LINE pushes.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	MaxRetries       int
	RetryBackoff     time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "streakconnect-line-notifier",
		Topics:           []string{"ticket-notifications"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	pusher        LinePusher
	ticketRepo    tickets.Repository
	log           *logger.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewConsumer(config *ConsumerConfig, pusher LinePusher, ticketRepo tickets.Repository) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		pusher:        pusher,
		ticketRepo:    ticketRepo,
		log:           logger.GetDefault(),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (kc *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	kc.log.Info("Starting LINE notifier workers", "workers", numWorkers, "topics", kc.config.Topics)

	go kc.handleErrors()

	for i := 0; i < numWorkers; i++ {
		kc.wg.Add(1)
		go func(workerID int) {
			defer kc.wg.Done()
			kc.runWorker(ctx, workerID)
		}(i)
	}

	return nil
}

func (kc *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &eventHandler{consumer: kc, workerID: workerID}

	for {
		select {
		case <-ctx.Done():
			return
		case <-kc.ctx.Done():
			return
		default:
			if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
				kc.log.Error("Consumer error", "worker", workerID, "error", err.Error())
				time.Sleep(time.Second)
			}
		}
	}
}

func (kc *kafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		kc.log.Error("Consumer group error", "error", err.Error())
	}
}

func (kc *kafkaConsumer) Stop() error {
	kc.cancel()
	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	kc.wg.Wait()
	return nil
}

type eventHandler struct {
	consumer *kafkaConsumer
	workerID int
}

func (h *eventHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *eventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *eventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.consumer.log.Error("Failed to process ticket event",
					"worker", h.workerID,
					"offset", message.Offset,
					"error", err.Error(),
				)
			}
			// Mark regardless: a push that exhausted its retries is dropped,
			// not replayed forever.
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *eventHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event TicketEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ticket event: %w", err)
	}

	if err := h.pushWithRetry(ctx, &event); err != nil {
		return err
	}

	if event.Kind == TicketEventConfirmed && event.TicketID != "" {
		if err := h.consumer.ticketRepo.MarkLineNotified(ctx, event.TicketID); err != nil {
			h.consumer.log.Error("Failed to mark ticket as notified",
				"ticket_id", event.TicketID,
				"error", err.Error(),
			)
		}
	}

	h.consumer.log.LogLinePush(ctx, event.MemberID, nil)
	return nil
}

func (h *eventHandler) pushWithRetry(ctx context.Context, event *TicketEvent) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoff
	text := messageFor(event)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = h.consumer.pusher.PushText(ctx, event.MemberID, text)
		if lastErr == nil {
			return nil
		}

		if attempt == maxRetries {
			break
		}

		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("push failed after %d attempts: %w", maxRetries+1, lastErr)
}
