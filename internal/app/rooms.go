package app

import (
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// PairResult reports a successful match. The requester whose scan found the
// waiting peer becomes the offerer.
type PairResult struct {
	RoomID   domain.RoomID
	Offerer  domain.UserID
	Answerer domain.UserID
}

// Pair finds a seeking peer for the requester and, if one exists, creates
// the room in the same critical section: room insert, both membership
// entries and both presence removals commit together or not at all. Returns
// false when the requester already left the lobby (a concurrent pairing
// consumed them) or nobody else is seeking.
func (s *State) Pair(requester domain.UserID) (PairResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presences[requester]; !ok {
		return PairResult{}, false
	}
	peer, ok := s.findPeer(requester)
	if !ok {
		return PairResult{}, false
	}

	roomID := s.allocRoomID()
	s.rooms[roomID] = domain.NewRoom(roomID, requester, peer)
	s.membership[requester] = roomID
	s.membership[peer] = roomID
	delete(s.presences, requester)
	delete(s.presences, peer)

	log.Info().Str("module", "app.state").
		Str("room", string(roomID)).
		Str("offerer", string(requester)).
		Str("answerer", string(peer)).
		Msg("room created")
	return PairResult{RoomID: roomID, Offerer: requester, Answerer: peer}, true
}

// RoomOf is the O(1) membership lookup.
func (s *State) RoomOf(id domain.UserID) (domain.RoomID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.membership[id]
	return roomID, ok
}

// PeerOf returns the other member of the user's room, if the user is in one.
func (s *State) PeerOf(id domain.UserID) (domain.UserID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.membership[id]
	if !ok {
		return "", false
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return "", false
	}
	return room.PeerOf(id)
}

// PeerInRoom resolves the relay target: the room must be live and the sender
// one of its members, otherwise the signal has nowhere to go.
func (s *State) PeerInRoom(roomID domain.RoomID, sender domain.UserID) (domain.UserID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return "", false
	}
	return room.PeerOf(sender)
}

// Dissolve removes the room and both membership entries. Idempotent: a
// concurrent end-call and disconnect may both land here, only the first
// returns true and only that caller notifies.
func (s *State) Dissolve(roomID domain.RoomID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dissolveLocked(roomID)
}

func (s *State) dissolveLocked(roomID domain.RoomID) bool {
	room, ok := s.rooms[roomID]
	if !ok {
		return false
	}
	delete(s.rooms, roomID)
	for _, m := range room.Members {
		delete(s.membership, m)
	}
	log.Info().Str("module", "app.state").Str("room", string(roomID)).Msg("room dissolved")
	return true
}

// LeaveRoom dissolves the caller's room, if any, and reports the peer that
// should be told the call ended. The peer is not returned to the lobby;
// re-entry is an explicit join.
func (s *State) LeaveRoom(id domain.UserID) (domain.UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roomID, ok := s.membership[id]
	if !ok {
		return "", false
	}
	room, live := s.rooms[roomID]
	if !live {
		delete(s.membership, id)
		return "", false
	}
	peer, _ := room.PeerOf(id)
	s.dissolveLocked(roomID)
	return peer, peer != ""
}

// Rooms copies out the live room table for inspection.
func (s *State) Rooms() []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	return out
}
