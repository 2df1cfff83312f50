package sink

import (
	"context"
	"market-hub/domain/event"
	"market-hub/errors"
)

// ConnSink is the buffered channel feeding one connection's write loop.
// The websocket handler owns the draining side.
type ConnSink struct {
	Events chan event.DomainEvent
}

func NewConnSink(bufferSize int) *ConnSink {
	return &ConnSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the broadcaster. It hands the event to the
// connection's writer and never blocks past the caller's context: a full
// buffer means the peer is too slow and the event is dropped for it.
func (s *ConnSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSinkBackpressure
	}
}
