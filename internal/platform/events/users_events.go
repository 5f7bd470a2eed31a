package events

import (
	"time"

	"github.com/philly/member-admin/internal/platform/eventbus"
)

// Event topics for users
const (
	UserRolesAssignedTopic eventbus.Topic = "users.roles_assigned"
)

// UserRolesAssignedEvent is published after roles were appended to users.
// RoleNames is in the rank order they were stored in.
type UserRolesAssignedEvent struct {
	UserIDs    []string
	RoleNames  []string
	Modified   int64
	ActorID    string
	OccurredAt time.Time
}

// AllTopics lists every topic the service publishes.
func AllTopics() []eventbus.Topic {
	return []eventbus.Topic{
		RoleCreatedTopic,
		RoleUpdatedTopic,
		RoleStatusChangedTopic,
		RoleDeletedTopic,
		UserRolesAssignedTopic,
	}
}
