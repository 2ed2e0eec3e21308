package store

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string][]string{},
	}
}

func (m *MemoryStore) AddSubscriber(_ context.Context, room, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.rooms[room], id) {
		m.rooms[room] = append(m.rooms[room], id)
	}
	return len(m.rooms[room]), nil
}

func (m *MemoryStore) Subscribers(_ context.Context, room string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rooms[room]), nil
}

func (m *MemoryStore) RemoveSubscriber(_ context.Context, room, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := slices.DeleteFunc(m.rooms[room], func(s string) bool { return s == id })
	if len(subs) == 0 {
		delete(m.rooms, room)
		return nil
	}
	m.rooms[room] = subs
	return nil
}
