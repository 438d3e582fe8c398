// Package notifications forwards audit events to Kafka for downstream consumers
// such as developer email and chat integrations.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"devportal/internal/platform/kafka/producer"
	"devportal/pkg/platform/audit"
)

var (
	// ErrBufferFull is returned by Emit when the async buffer cannot take another event.
	ErrBufferFull = errors.New("notification buffer full")
	ErrClosed     = errors.New("notifier closed")
)

// Notifier publishes audit events as JSON records keyed by application id so
// events of one application stay ordered within a partition.
type Notifier struct {
	producer producer.Publisher
	topic    string
	logger   *slog.Logger

	events chan audit.Event
	wg     sync.WaitGroup
	async  bool

	// mu guards closed and the send on events.
	mu     sync.RWMutex
	closed bool
}

type Option func(*Notifier)

// WithAsyncBuffer queues events and publishes them from a background goroutine.
func WithAsyncBuffer(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.events = make(chan audit.Event, size)
			n.async = true
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

func New(p producer.Publisher, topic string, opts ...Option) *Notifier {
	n := &Notifier{producer: p, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.drain()
	}
	return n
}

func (n *Notifier) drain() {
	defer n.wg.Done()
	for event := range n.events {
		if err := n.publish(event); err != nil {
			n.logger.Error("failed to publish notification",
				"error", err,
				"event", event.Action,
				"application_id", event.ApplicationID,
			)
		}
	}
}

// Emit implements audit.Emitter. In async mode it never blocks; a full buffer
// drops the event. Events emitted after Close are dropped with ErrClosed.
func (n *Notifier) Emit(_ context.Context, event audit.Event) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrClosed
	}
	if !n.async {
		return n.publish(event)
	}
	select {
	case n.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

func (n *Notifier) publish(event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	msg := &producer.Message{
		Topic: n.topic,
		Key:   []byte(event.ApplicationID),
		Value: value,
		Headers: map[string]string{
			"event":      event.Action,
			"request_id": event.RequestID,
		},
	}
	return n.producer.ProduceAsync(msg)
}

// Close stops accepting events and waits for queued ones to be handed to the producer.
// Calling it more than once is safe.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	if n.async {
		close(n.events)
	}
	n.mu.Unlock()
	n.wg.Wait()
}
