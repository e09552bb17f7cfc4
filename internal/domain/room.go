package domain

type RoomID string

// Room pairs exactly two users for signal relay. It is created with both
// members and dissolved on the first departure; it never holds one.
type Room struct {
	ID      RoomID
	Members [2]UserID
}

func NewRoom(id RoomID, a, b UserID) *Room {
	return &Room{ID: id, Members: [2]UserID{a, b}}
}

func (r *Room) Has(id UserID) bool {
	return r.Members[0] == id || r.Members[1] == id
}

// PeerOf returns the other member of the room.
func (r *Room) PeerOf(id UserID) (UserID, bool) {
	switch id {
	case r.Members[0]:
		return r.Members[1], true
	case r.Members[1]:
		return r.Members[0], true
	}
	return "", false
}
