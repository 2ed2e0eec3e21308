// Package store keeps the lobby registry: which subscribers joined which room.
package store

import "context"

// Store records subscribers per room in join order. Join order decides the
// seat of each subscriber when a round starts.
type Store interface {
	// AddSubscriber registers id in room and returns the number of subscribers.
	AddSubscriber(ctx context.Context, room, id string) (int, error)
	Subscribers(ctx context.Context, room string) ([]string, error)
	RemoveSubscriber(ctx context.Context, room, id string) error
}
