package app

import (
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// PresenceInfo is the per-user payload of a lobby-status broadcast.
type PresenceInfo struct {
	Active     bool  `json:"active"`
	LastActive int64 `json:"lastActive"`
}

// Join inserts the user into the lobby, or resets an existing entry to
// not-seeking. Safe to call repeatedly: a reconnect or an ended call lands
// back here with the same user id.
func (s *State) Join(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.presences[id]; ok {
		p.Seeking = false
		p.LastActiveAt = s.now()
		return
	}
	s.presences[id] = domain.NewPresence(id, s.now())
	log.Info().Str("module", "app.state").Str("user", string(id)).Msg("joined lobby")
}

// MarkSeeking flags a lobby user as waiting for a call. Returns false if the
// user is not in the lobby.
func (s *State) MarkSeeking(id domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presences[id]
	if !ok {
		return false
	}
	p.Seeking = true
	p.LastActiveAt = s.now()
	return true
}

// RemovePresence deletes the lobby entry if present. Idempotent.
func (s *State) RemovePresence(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.presences, id)
}

// Snapshot copies out the current lobby; callers never see the live map.
func (s *State) Snapshot() map[domain.UserID]PresenceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.UserID]PresenceInfo, len(s.presences))
	for id, p := range s.presences {
		out[id] = PresenceInfo{Active: p.Seeking, LastActive: p.LastActiveAt}
	}
	return out
}

// InLobby reports whether the user currently has a presence entry.
func (s *State) InLobby(id domain.UserID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.presences[id]
	return ok
}
