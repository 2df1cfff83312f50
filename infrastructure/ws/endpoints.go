package ws

import (
	"context"
	"log/slog"
	"market-hub/auth"
	"market-hub/contract"
	"market-hub/domain"
	"market-hub/observability"
	"market-hub/services"
)

// NewChatEndpoint serves /ws/chat. Join is unrestricted self-join: any
// connection that knows a conversation key may enter its group.
func NewChatEndpoint(log *slog.Logger, authority *auth.SessionAuthority,
	reg contract.IRegistry, stats *observability.HubStats,
	router *services.ChatRouter, opts Options) *Handler {
	h := newHandler(log, observability.ChatChannel, authority, reg, stats, opts)
	h.dispatch = func(ctx context.Context, c *Conn, f Frame) {
		switch f.Action {
		case "joinChat":
			router.JoinConversation(c.ID, f.ConversationID)
		case "leaveChat":
			router.LeaveConversation(c.ID, f.ConversationID)
		case "sendMessage":
			router.SendMessage(ctx, f.ConversationID, c.Identity, f.Body)
		}
	}
	return h
}

// NewNotificationsEndpoint serves /ws/notifications. The group key is the
// normalized user id supplied by the client.
func NewNotificationsEndpoint(log *slog.Logger, authority *auth.SessionAuthority,
	reg contract.IRegistry, stats *observability.HubStats,
	router *services.NotificationRouter, opts Options) *Handler {
	h := newHandler(log, observability.NotificationsChannel, authority, reg, stats, opts)
	h.dispatch = func(_ context.Context, c *Conn, f Frame) {
		if f.Action == "joinUserNotifications" {
			router.JoinUserNotifications(c.ID, f.UserID)
		}
	}
	return h
}

// NewMonitoringEndpoint serves /ws/monitoring. Admins are auto-joined on
// connect; the explicit join re-checks the role rather than trusting the
// auto-join. Everyone else connects into an empty session.
func NewMonitoringEndpoint(log *slog.Logger, authority *auth.SessionAuthority,
	reg contract.IRegistry, stats *observability.HubStats,
	router *services.MonitoringRouter, opts Options) *Handler {
	h := newHandler(log, observability.MonitoringChannel, authority, reg, stats, opts)
	h.onConnect = func(connID string, identity domain.Identity) {
		router.AutoJoinOnConnect(connID, identity)
	}
	h.dispatch = func(_ context.Context, c *Conn, f Frame) {
		if f.Action == "joinAdminMonitoring" {
			router.JoinAdminMonitoring(c.ID, c.Identity)
		}
	}
	return h
}
