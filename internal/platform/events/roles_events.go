package events

import (
	"time"

	"github.com/philly/member-admin/internal/platform/eventbus"
)

// Event topics for roles
const (
	RoleCreatedTopic       eventbus.Topic = "roles.created"
	RoleUpdatedTopic       eventbus.Topic = "roles.updated"
	RoleStatusChangedTopic eventbus.Topic = "roles.status_changed"
	RoleDeletedTopic       eventbus.Topic = "roles.deleted"
)

// RoleCreatedEvent is published when a custom role is inserted
type RoleCreatedEvent struct {
	RoleID      string
	ActorID     string
	Name        string
	Rank        int
	Permissions []string
	OccurredAt  time.Time
}

// RoleUpdatedEvent is published after a full overwrite of a role.
// PreviousName differs from Name on a rename; users holding PreviousName keep it.
type RoleUpdatedEvent struct {
	RoleID       string
	ActorID      string
	Name         string
	PreviousName string
	Status       string
	OccurredAt   time.Time
}

// RoleStatusChangedEvent is published when a role is (de)activated
type RoleStatusChangedEvent struct {
	RoleID     string
	ActorID    string
	Status     string
	OccurredAt time.Time
}

// RoleDeletedEvent is published when a role document is removed.
// Assignments by Name are left in place.
type RoleDeletedEvent struct {
	RoleID     string
	ActorID    string
	Name       string
	OccurredAt time.Time
}
