// Package events publishes enrollment lifecycle events for downstream consumers
// (dashboard notifications, CRM sync).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EnrollmentSubmitted = "enrollment.submitted"
	EnrollmentApproved  = "enrollment.approved"
	EnrollmentRejected  = "enrollment.rejected"
)

type EnrollmentEvent struct {
	Type       string    `json:"type"`
	RequestID  int64     `json:"request_id"`
	CourseID   int64     `json:"course_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishEnrollment(ctx context.Context, ev EnrollmentEvent) error
}

// Nop is used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEnrollment(context.Context, EnrollmentEvent) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}}
}

// PublishEnrollment keys messages by request id so one request's events stay ordered.
func (p *KafkaPublisher) PublishEnrollment(ctx context.Context, ev EnrollmentEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal enrollment event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.RequestID, 10)),
		Value: data,
		Time:  ev.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write enrollment event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
