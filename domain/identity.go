package domain

import "strings"

const RoleAdmin = "admin"

// Identity carries the claims of the user that opened a connection.
// A zero Identity is an anonymous connection.
type Identity struct {
	UserID      string
	DisplayName string
	Roles       []string
}

func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// HasRole is the opaque predicate the session authority consults.
// Role names are matched case-insensitively.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
