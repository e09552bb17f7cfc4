package domain

import "strings"

// Inbound message types accepted from clients. Anything else is dropped.
const (
	TypeJoin         = "join"
	TypeStartCall    = "start-call"
	TypeEndCall      = "end-call"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
	TypePeerInfo     = "peer-info"
)

// Outbound message types produced by the server.
const (
	TypeLobbyStatus = "lobby-status"
	TypeOfferer     = "offerer"
	TypeAnswerer    = "answerer"
	TypeCallEnded   = "call-ended"
	TypeRoomInfo    = "room-info"
	TypeLobbyInfo   = "lobby-info"
)

// Message is the signaling envelope exchanged with clients. Data is opaque
// to the relay: offers, answers and candidates are forwarded verbatim.
type Message struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient,omitempty"`
	Room      string `json:"room,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func KnownType(t string) bool {
	switch t {
	case TypeJoin, TypeStartCall, TypeEndCall, TypeOffer, TypeAnswer, TypeICECandidate, TypePeerInfo:
		return true
	}
	return false
}

// Valid reports whether an inbound envelope may be dispatched: recognized
// type and a usable sender identity. Whitespace-only senders count as blank.
func (m *Message) Valid() bool {
	return KnownType(m.Type) && ValidateUserID(UserID(strings.TrimSpace(m.Sender))) == nil
}
