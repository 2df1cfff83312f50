package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"market-hub/contract"
	"market-hub/domain/event"
	"time"
)

// Broadcaster pushes an event to every live member of a group.
// Delivery is fire and forget: a member whose sink fails is logged at
// debug severity and never aborts delivery to the remaining members.
type Broadcaster struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewBroadcaster(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Broadcaster {
	return &Broadcaster{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// Broadcast sends the event to every member sink snapshotted from the
// registry, once per live member per call. Per-member outcomes are
// aggregated into a batch result that is logged only: no failure here
// ever reaches the triggering caller.
func (b *Broadcaster) Broadcast(ctx context.Context, group string, e event.DomainEvent) {
	sinks := b.registry.SinksFor(group)
	if len(sinks) == 0 {
		return
	}

	delivered, failed := 0, 0
	for _, sink := range sinks {
		if err := b.deliver(ctx, sink, e); err != nil {
			failed++
			b.log.Debug("event delivery failed",
				"group", group,
				"event", e.EventName(),
				"error", err)
			continue
		}
		delivered++
	}

	b.log.Debug(fmt.Sprintf("Broadcast %s to group %s", e.EventName(), group),
		"delivered", delivered,
		"failed", failed)
}

// deliver bounds a single sink send so one slow consumer cannot hold a
// broadcast hostage. Cancelling ctx aborts only the in-flight send.
func (b *Broadcaster) deliver(ctx context.Context, sink contract.EventSink, e event.DomainEvent) error {
	sendCtx, cancel := context.WithTimeout(ctx, b.sinkTimeout)
	defer cancel()
	return sink.Consume(sendCtx, e)
}
