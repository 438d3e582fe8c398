// Package tracer is a small tracing facade over OpenTelemetry. Services depend
// on Tracer so tests can swap in NoopTracer or Recorder.
package tracer

import (
	"context"
	"time"
)

// Span is an in-flight operation. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations are safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute    { return Attribute{Key: key, Value: value} }
func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }
func Int(key string, value int) Attribute   { return Attribute{Key: key, Value: int64(value)} }

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanIDMCall       = "idm.call"
	SpanFixRun        = "scopes.fix"
	SpanFixCredential = "scopes.fix.credential"
	SpanMinimise      = "scopes.minimise"
)

// Attribute keys.
const (
	AttrOperation     = "idm.operation"
	AttrEnvironment   = "environment"
	AttrClientID      = "client_id"
	AttrApplicationID = "application_id"
	AttrAttempts      = "idm.attempts"
	AttrCredentials   = "credentials"
	AttrScopesAdded   = "scopes.added"
	AttrScopesRemoved = "scopes.removed"
)
