package domain

import "strings"

// AdminMonitoringGroup is the single fixed group behind the role gate.
const AdminMonitoringGroup = "admin-monitoring"

// ConversationGroup builds the chat group name for a caller-supplied
// conversation key. Knowing the key is the access model: the key is not
// validated for existence. Returns "" for blank input.
func ConversationGroup(conversationKey string) string {
	key := strings.TrimSpace(conversationKey)
	if key == "" {
		return ""
	}
	return "chat:" + key
}

// UserGroup builds the notification group name for a user id so that
// case and whitespace variants of the same id converge to one group.
// Returns "" for blank input.
func UserGroup(userID string) string {
	key := NormalizeUserKey(userID)
	if key == "" {
		return ""
	}
	return "user:" + key
}

func NormalizeUserKey(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}
