package services

import (
	"context"
	"log/slog"
	"market-hub/contract"
	"market-hub/domain"
	"market-hub/domain/event"
	"time"
)

// NotificationRouter routes per-user notifications. Group keys are
// normalized (trim + lower-case fold) so case and whitespace variants of
// one user id converge to a single group.
type NotificationRouter struct {
	log         *slog.Logger
	registry    contract.IRegistry
	broadcaster contract.IBroadcaster
}

func NewNotificationRouter(log *slog.Logger, registry contract.IRegistry,
	broadcaster contract.IBroadcaster) *NotificationRouter {
	return &NotificationRouter{log: log, registry: registry, broadcaster: broadcaster}
}

// JoinUserNotifications subscribes the connection to a user's personal
// group. A blank user id silently joins nothing.
func (r *NotificationRouter) JoinUserNotifications(connID, userID string) bool {
	group := domain.UserGroup(userID)
	if group == "" {
		return false
	}
	r.registry.Join(connID, group)
	return true
}

// PublishToUser is the entrypoint external domain logic uses to push a
// notification at a user. Deciding when to notify is the caller's job.
func (r *NotificationRouter) PublishToUser(ctx context.Context, userID, kind string, data map[string]any) {
	group := domain.UserGroup(userID)
	if group == "" {
		return
	}
	r.broadcaster.Broadcast(ctx, group, event.UserNotification{
		Group: group,
		Kind:  kind,
		Data:  data,
		AtUtc: time.Now().UTC(),
	})
}
