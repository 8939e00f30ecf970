package storage

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"mealdrop/internal/domain"

	"github.com/segmentio/kafka-go"
)

// AuditPublisher mirrors invalid requests onto a Kafka topic. Publishing is
// best effort: a failed write is counted and logged, never returned to the
// request path.
type AuditPublisher struct {
	Writer  *kafka.Writer
	dropped atomic.Int64
}

func NewAuditPublisher(writer *kafka.Writer) *AuditPublisher {
	return &AuditPublisher{Writer: writer}
}

func (p *AuditPublisher) PublishInvalid(ctx context.Context, event domain.AuditEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.dropped.Add(1)
		return
	}
	if err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Reason),
		Value: payload,
	}); err != nil {
		p.dropped.Add(1)
		log.Printf("[mealdrop] audit publish failed: %v", err)
	}
}

// Dropped reports how many audit events were lost to publish failures.
func (p *AuditPublisher) Dropped() int64 {
	return p.dropped.Load()
}

func (p *AuditPublisher) Close() error {
	return p.Writer.Close()
}
