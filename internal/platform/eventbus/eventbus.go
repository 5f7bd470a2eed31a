package eventbus

import "context"

// Topic is the type for event topics.
type Topic string

// Event represents a message passed on the bus.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler is a function that processes an event.
type Handler func(ctx context.Context, event Event) error

// Publisher is the fire-and-forget side of the bus. Application services
// depend on this rather than on *Bus.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

var _ Publisher = (*Bus)(nil)
