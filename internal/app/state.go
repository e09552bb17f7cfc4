package app

import (
	"sync"
	"time"

	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/google/uuid"
)

// State is the transactional store behind the lobby and room components.
// The presence map, the room table and the membership index always change
// together, so they share one lock: pairing and dissolving are single
// critical sections and no partial transition is ever visible.
type State struct {
	mu         sync.RWMutex
	presences  map[domain.UserID]*domain.Presence
	rooms      map[domain.RoomID]*domain.Room
	membership map[domain.UserID]domain.RoomID

	now func() int64

	// NewRoomID produces candidate room ids; uniqueness against the live
	// table is enforced separately, so the generator may repeat itself.
	NewRoomID func() domain.RoomID
}

func NewState() *State {
	return &State{
		presences:  make(map[domain.UserID]*domain.Presence),
		rooms:      make(map[domain.RoomID]*domain.Room),
		membership: make(map[domain.UserID]domain.RoomID),
		now:        func() int64 { return time.Now().UnixMilli() },
		NewRoomID:  randomRoomID,
	}
}

func randomRoomID() domain.RoomID {
	return domain.RoomID("room-" + uuid.NewString()[:8])
}

// allocRoomID must run with the write lock held: uniqueness is checked
// against the live room table.
func (s *State) allocRoomID() domain.RoomID {
	for {
		id := s.NewRoomID()
		if _, taken := s.rooms[id]; !taken {
			return id
		}
	}
}
