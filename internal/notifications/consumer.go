package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeoutMs  int
	HeartbeatMs       int
	RetryBackoffMs    int
	MaxProcessingTime time.Duration
	AutoCommit        bool
	OffsetOldest      bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "seatwise-seat-event-workers",
		Topics:            []string{"seatwise.seat-events"},
		SessionTimeoutMs:  30000,
		HeartbeatMs:       3000,
		RetryBackoffMs:    100,
		MaxProcessingTime: time.Minute,
		AutoCommit:        true,
		OffsetOldest:      false,
	}
}

// SeatEventConsumer keeps cached availability views in sync with the
// booked-seat ledger by consuming published seat events.
type SeatEventConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	cacheService  cache.Service
	log           *logger.Logger
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewSeatEventConsumer(config *ConsumerConfig, cacheService cache.Service, log *logger.Logger) (*SeatEventConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &SeatEventConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		cacheService:  cacheService,
		log:           log,
	}, nil
}

func (c *SeatEventConsumer) Start(ctx context.Context, numWorkers int) error {
	ctx, c.cancel = context.WithCancel(ctx)
	c.log.Info("starting seat-event consumer workers",
		"workers", numWorkers, "topics", c.config.Topics)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}
	return nil
}

func (c *SeatEventConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &seatEventHandler{consumer: c, workerID: workerID}

	for {
		select {
		case <-ctx.Done():
			c.log.Info("seat-event worker shutting down", "worker", workerID)
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
				c.log.Warn("seat-event worker consume error",
					"worker", workerID, "error", err.Error())
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *SeatEventConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.log.Warn("seat-event consumer group error", "error", err.Error())
	}
}

func (c *SeatEventConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.log.Info("seat-event consumer stopped")
	return nil
}

type seatEventHandler struct {
	consumer *SeatEventConsumer
	workerID int
}

func (h *seatEventHandler) Setup(sarama.ConsumerGroupSession) error {
	h.consumer.log.Debug("seat-event consumer session started", "worker", h.workerID)
	return nil
}

func (h *seatEventHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.consumer.log.Debug("seat-event consumer session ended", "worker", h.workerID)
	return nil
}

func (h *seatEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.consumer.log.Warn("seat event processing failed",
					"worker", h.workerID, "error", err.Error())
			} else {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *seatEventHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event SeatEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal seat event: %w", err)
	}

	// Stale availability views for this event must be rebuilt.
	if h.consumer.cacheService != nil {
		eventID := event.EventID.String()
		_ = h.consumer.cacheService.Delete(ctx, constants.BuildSeatMapViewKey(eventID))
		_ = h.consumer.cacheService.Delete(ctx, constants.CACHE_KEY_SEATMAP_BOOKED+eventID)
		_ = h.consumer.cacheService.Delete(ctx, constants.BuildEventOccupancyKey(eventID))
	}

	h.consumer.log.InfoContext(ctx, "seat event consumed",
		"worker", h.workerID,
		"type", string(event.Type),
		"event_id", event.EventID.String(),
		"seat_count", len(event.SeatIDs),
		"partition", message.Partition,
		"offset", message.Offset)
	return nil
}
