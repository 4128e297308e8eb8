package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"seatwise/pkg/logger"
)

// KafkaProducerConfig contains configuration for the seat-event producer.
type KafkaProducerConfig struct {
	Brokers          []string
	SeatEventsTopic  string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		SeatEventsTopic:  "seatwise.seat-events",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// SeatEventProducer publishes booked-seat ledger changes to Kafka.
type SeatEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewSeatEventProducer creates a new Kafka seat-event producer
func NewSeatEventProducer(config *KafkaProducerConfig, log *logger.Logger) (*SeatEventProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps every event's messages on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info("Kafka seat-event producer created", "topic", config.SeatEventsTopic)
	return &SeatEventProducer{
		producer: producer,
		config:   config,
		log:      log,
	}, nil
}

// PublishSeatsBooked broadcasts a successful ledger commit.
func (p *SeatEventProducer) PublishSeatsBooked(ctx context.Context, eventID uuid.UUID, seatIDs []string) error {
	return p.publish(ctx, NewSeatEvent(SeatEventBooked, eventID, seatIDs))
}

// PublishSeatsReleased broadcasts seats returning to the available pool.
func (p *SeatEventProducer) PublishSeatsReleased(ctx context.Context, eventID uuid.UUID, seatIDs []string) error {
	return p.publish(ctx, NewSeatEvent(SeatEventReleased, eventID, seatIDs))
}

func (p *SeatEventProducer) publish(ctx context.Context, event *SeatEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal seat event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.SeatEventsTopic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send seat event to Kafka: %w", err)
	}

	p.log.InfoContext(ctx, "seat event published",
		"topic", p.config.SeatEventsTopic,
		"partition", partition,
		"offset", offset,
		"type", string(event.Type),
		"event_id", event.EventID.String(),
		"seat_count", len(event.SeatIDs))
	return nil
}

func (p *SeatEventProducer) createHeaders(event *SeatEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("event_id"), Value: []byte(event.EventID.String())},
		{Key: []byte("producer"), Value: []byte("seatwise-ledger")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (p *SeatEventProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		p.log.Info("Kafka seat-event producer closed")
	}
	return nil
}
