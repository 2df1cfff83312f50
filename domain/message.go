package domain

import "time"

// ChatMessage is ephemeral: this subsystem never persists it.
type ChatMessage struct {
	SenderDisplayName *string   `json:"senderDisplayName"`
	Body              string    `json:"body"`
	SentAt            time.Time `json:"sentAt"`
}
