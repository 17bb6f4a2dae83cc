// Package messaging publishes job lifecycle events to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"job-posting-backend/internal/domain"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	JobCreatedSubject = "jobs.created"
	connectTimeout    = 10 * time.Second
)

// JobCreatedEvent is the payload sent on JobCreatedSubject.
type JobCreatedEvent struct {
	ID                string    `json:"id"`
	Slug              string    `json:"slug"`
	Title             string    `json:"title"`
	Email             string    `json:"email"`
	PostCategory      string    `json:"post_category,omitempty"`
	PostSubcategory   string    `json:"post_subcategory,omitempty"`
	AmountToPay       int       `json:"amount_to_pay"`
	CommissionPercent int       `json:"commission_percent"`
	DateStart         time.Time `json:"date_start"`
	DateEnd           time.Time `json:"date_end"`
	PublishedAt       time.Time `json:"published_at"`
}

func NewJobCreatedEvent(job *domain.Job, now time.Time) JobCreatedEvent {
	event := JobCreatedEvent{
		ID:          job.ID.String(),
		Slug:        job.Slug,
		Title:       job.Title,
		Email:       job.Email,
		DateStart:   job.DateStart,
		DateEnd:     job.DateEnd,
		PublishedAt: now,
	}
	if job.PostCategory != nil {
		event.PostCategory = job.PostCategory.Name
	}
	if job.PostSubcategory != nil {
		event.PostSubcategory = job.PostSubcategory.Name
	}
	if job.AmountToPay != nil {
		event.AmountToPay = *job.AmountToPay
	}
	if job.PaymentComission != nil {
		event.CommissionPercent = job.PaymentComission.Percentage
	}
	return event
}

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type NATSPublisher struct {
	nc     conn
	logger *zap.Logger
	now    func() time.Time
}

func NewNATSPublisher(natsURL string, logger *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("job-posting-backend"),
		nats.Timeout(connectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return newPublisher(nc, logger), nil
}

func newPublisher(nc conn, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, logger: logger, now: time.Now}
}

func (p *NATSPublisher) PublishJobCreated(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(NewJobCreatedEvent(job, p.now()))
	if err != nil {
		return fmt.Errorf("marshaling job created event: %w", err)
	}

	if err := p.nc.Publish(JobCreatedSubject, data); err != nil {
		p.logger.Error("failed to publish job created event",
			zap.String("id", job.ID.String()),
			zap.Error(err))
		return fmt.Errorf("publishing job created event: %w", err)
	}

	p.logger.Debug("published job created event",
		zap.String("id", job.ID.String()),
		zap.String("subject", JobCreatedSubject))
	return nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
