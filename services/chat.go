// Package services holds the channel routers: thin policy layers that
// resolve group keys and hand delivery to the broadcaster.
package services

import (
	"context"
	"log/slog"
	"market-hub/contract"
	"market-hub/domain"
	"market-hub/domain/event"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ChatRouter routes conversation traffic. The group key is the
// caller-supplied conversation id, not validated for existence: only a
// client that already knows the id can join, which is the accepted trust
// boundary of the chat channel.
type ChatRouter struct {
	log         *slog.Logger
	registry    contract.IRegistry
	broadcaster contract.IBroadcaster
}

func NewChatRouter(log *slog.Logger, registry contract.IRegistry,
	broadcaster contract.IBroadcaster) *ChatRouter {
	return &ChatRouter{log: log, registry: registry, broadcaster: broadcaster}
}

// JoinConversation subscribes the connection to a conversation group.
// A blank key silently joins nothing (fails closed).
func (r *ChatRouter) JoinConversation(connID, conversationKey string) bool {
	group := domain.ConversationGroup(conversationKey)
	if group == "" {
		return false
	}
	r.registry.Join(connID, group)
	return true
}

func (r *ChatRouter) LeaveConversation(connID, conversationKey string) {
	if group := domain.ConversationGroup(conversationKey); group != "" {
		r.registry.Leave(connID, group)
	}
}

// SendMessage stamps the message with the current instant and broadcasts
// it to every current member of the conversation. Nothing is persisted
// here; history, if any, belongs to an external collaborator.
func (r *ChatRouter) SendMessage(ctx context.Context, conversationKey string,
	sender domain.Identity, body string) {
	group := domain.ConversationGroup(conversationKey)
	if group == "" || strings.TrimSpace(body) == "" {
		return
	}

	var senderName *string
	if !sender.Anonymous() {
		senderName = lo.ToPtr(sender.DisplayName)
	}

	r.broadcaster.Broadcast(ctx, group, event.ChatMessageReceived{
		Group: group,
		Message: domain.ChatMessage{
			SenderDisplayName: senderName,
			Body:              body,
			SentAt:            time.Now().UTC(),
		},
	})
}
