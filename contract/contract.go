package contract

import (
	"context"
	"market-hub/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one delivery endpoint for outbound events, usually the
// buffered channel feeding a single websocket connection's write loop.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live connections and their group memberships.
// Groups exist implicitly: an unknown group is an empty member set.
type IRegistry interface {
	Connect(connID string, sink EventSink)
	Join(connID, group string)
	Leave(connID, group string)
	OnDisconnect(connID string)
	SinksFor(group string) []EventSink
}

// IBroadcaster pushes one event to every live member of a group, best effort.
type IBroadcaster interface {
	Broadcast(ctx context.Context, group string, e event.DomainEvent)
}

// IDebouncer collapses bursts of triggers for one source key into at most
// one allowed trigger per configured interval.
type IDebouncer interface {
	Allow(source string) bool
}
