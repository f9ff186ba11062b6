package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// transactionRecordedEvent is the wire payload published after a ledger apply.
type transactionRecordedEvent struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	RecordedAt      time.Time       `json:"recordedAt"`
}

// KafkaPublisher publishes ledger events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ portssvc.LedgerEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher writing to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishTransactionRecorded emits the transaction keyed by account so entries
// for one account stay ordered within a partition.
func (p *KafkaPublisher) PublishTransactionRecorded(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error {
	event := transactionRecordedEvent{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		NewBalance:      newBalance,
		RecordedAt:      txn.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(txn.AccountID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

var _ portssvc.LedgerEventPublisher = (*NoopPublisher)(nil)

// PublishTransactionRecorded does nothing.
func (NoopPublisher) PublishTransactionRecorded(context.Context, domain.Transaction, decimal.Decimal) error {
	return nil
}
