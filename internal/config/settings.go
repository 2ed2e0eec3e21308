package config

import "sync"

var defaultNames = [MaxPlayers]string{"ONE", "TWO", "THREE", "FOUR", "FIVE"}

// Settings are the per-session choices a player can change between rounds.
// Observers registered with OnChange run after every change.
type Settings struct {
	mu        sync.RWMutex
	names     [MaxPlayers]string
	meeples   int
	shuffle   bool
	observers []func()
}

func NewSettings(game Game) *Settings {
	meeples := game.MeeplesPerPlayer
	if meeples <= 0 {
		meeples = 7
	}
	return &Settings{names: defaultNames, meeples: meeples, shuffle: game.Shuffle}
}

// PlayerName returns the name of seat i, or "" for an unknown seat.
func (s *Settings) PlayerName(i int) string {
	if i < 0 || i >= MaxPlayers {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[i]
}

func (s *Settings) SetPlayerName(i int, name string) {
	if i < 0 || i >= MaxPlayers || name == "" {
		return
	}
	s.mu.Lock()
	s.names[i] = name
	s.mu.Unlock()
	s.notify()
}

func (s *Settings) Meeples() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meeples
}

func (s *Settings) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffle
}

func (s *Settings) SetShuffle(shuffle bool) {
	s.mu.Lock()
	changed := s.shuffle != shuffle
	s.shuffle = shuffle
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// OnChange registers fn to run after each change.
func (s *Settings) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Settings) notify() {
	s.mu.RLock()
	observers := append([]func(){}, s.observers...)
	s.mu.RUnlock()
	for _, fn := range observers {
		fn()
	}
}
