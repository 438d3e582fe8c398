package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devportal/pkg/requestcontext"
)

// Emitter delivers audit events to a sink. Implementations must not block for long.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Logger writes audit lines to the structured log and forwards the event to an
// optional Emitter. Emission failures are logged and never returned.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger. Either argument may be nil.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Log records an audit event. Attributes are key/value pairs; the well-known keys
// "actor", "application_id", "environment" and "subject" populate the Event fields.
//
//	logger.Log(ctx, audit.EventCredentialAdded, "application_id", app.ID, "environment", env)
func (l *Logger) Log(ctx context.Context, action string, attributes ...any) {
	if l == nil {
		return
	}
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if actor := requestcontext.Actor(ctx); actor != "" && extract(attributes, "actor") == "" {
		attributes = append(attributes, "actor", actor)
	}

	if l.textLogger != nil {
		args := append(attributes, "event", action, "log_type", "audit")
		l.textLogger.InfoContext(ctx, action, args...)
	}

	if l.emitter == nil {
		return
	}
	event := toEvent(requestcontext.Now(ctx), action, attributes)
	if err := l.emitter.Emit(ctx, event); err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"event", action,
		)
	}
}

func toEvent(now time.Time, action string, attributes []any) Event {
	event := Event{Timestamp: now.UTC(), Action: action}
	for i := 0; i+1 < len(attributes); i += 2 {
		key, ok := attributes[i].(string)
		if !ok {
			continue
		}
		value := fmt.Sprint(attributes[i+1])
		switch key {
		case "actor":
			event.Actor = value
		case "application_id":
			event.ApplicationID = value
		case "environment":
			event.Environment = value
		case "subject":
			event.Subject = value
		case "request_id":
			event.RequestID = value
		default:
			if event.Attributes == nil {
				event.Attributes = make(map[string]string)
			}
			event.Attributes[key] = value
		}
	}
	return event
}

func extract(attributes []any, key string) string {
	for i := 0; i+1 < len(attributes); i += 2 {
		if k, ok := attributes[i].(string); ok && k == key {
			return fmt.Sprint(attributes[i+1])
		}
	}
	return ""
}
