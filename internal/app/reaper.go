package app

import (
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// ReapResult describes what a disconnect unwound.
type ReapResult struct {
	Peer       domain.UserID
	NotifyPeer bool
	WasInLobby bool
}

// Reap unwinds everything a vanished user held: the room (including the
// peer's membership entry) and the lobby presence. One critical section, so
// a racing end-call for the same room observes all of it or none; the
// dissolve inside stays idempotent, so the peer is notified at most once
// across both paths.
func (s *State) Reap(id domain.UserID) ReapResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ReapResult
	if roomID, ok := s.membership[id]; ok {
		if room, live := s.rooms[roomID]; live {
			if peer, found := room.PeerOf(id); found {
				res.Peer = peer
				res.NotifyPeer = true
			}
		}
		s.dissolveLocked(roomID)
		delete(s.membership, id)
	}
	if _, ok := s.presences[id]; ok {
		delete(s.presences, id)
		res.WasInLobby = true
	}
	log.Info().Str("module", "app.state").
		Str("user", string(id)).
		Bool("had_room", res.NotifyPeer).
		Bool("was_in_lobby", res.WasInLobby).
		Msg("reaped user")
	return res
}
