package adapters

import "strings"

// Collapse merges role-tagged messages into one system and one user string for
// providers that take a single system prompt plus a single user turn.
// Empty fragments are skipped so they never leave a stray separator.
func Collapse(messages []Message) (system, user string) {
	var systemParts, userParts []string
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		case RoleUser:
			userParts = append(userParts, m.Content)
		}
	}
	system = strings.TrimSpace(strings.Join(systemParts, "\n\n"))
	user = strings.TrimSpace(strings.Join(userParts, "\n\n"))
	return system, user
}
