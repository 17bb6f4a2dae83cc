// Package audit writes structured, PII-masked records of job lifecycle and
// abuse-protection events.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audited event
type EventType string

const (
	EventJobCreated         EventType = "job_created"
	EventJobRejected        EventType = "job_rejected"
	EventJobUpdated         EventType = "job_updated"
	EventJobDeleted         EventType = "job_deleted"
	EventAvatarUploaded     EventType = "avatar_uploaded"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
)

// Event represents an audited event
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "job_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked for PII
	IP           string                 `json:"ip,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// Logger writes audit events through zap
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// Init builds a production audit logger writing JSON to stdout.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger = zap.NewNop()
	}

	return New(logger, serviceName, environment)
}

// New wraps an existing zap logger.
func New(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log writes a single event
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := zapcore.InfoLevel
	switch event.Event {
	case EventJobRejected, EventRateLimitTriggered:
		level = zapcore.WarnLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// LogJobRejected records a posting refused by a business rule.
func (l *Logger) LogJobRejected(ctx context.Context, email, reason string) {
	l.Log(ctx, Event{
		Event:        EventJobRejected,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogJobEvent records a lifecycle change on a persisted job.
func (l *Logger) LogJobEvent(ctx context.Context, event EventType, jobID, slug string) {
	l.Log(ctx, Event{
		Event:        event,
		SubjectType:  "job_id",
		SubjectValue: jobID,
		Details:      map[string]interface{}{"slug": slug},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (l *Logger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}
