package core

import "github.com/dmelnik/callrelay/internal/domain"

// Frame is a raw JSON payload delivered to a client as-is.
type Frame []byte

// SessionID identifies one client connection. A user id is bound to it once
// the client joins; the same user keeps its id across reconnects.
type SessionID string

// Channel names mirror the per-user queue destinations of the signaling
// protocol; topics are shared broadcast destinations.
const (
	ChannelRoomAssignment = "room-assignment"
	ChannelCallEnded      = "call-ended"
	ChannelSignal         = "signal"
	ChannelRoomInfo       = "room-info"
	ChannelLobbyInfo      = "lobby-info"

	TopicLobbyStatus = "lobby-status"
)

// Transport delivers frames to clients. Owned by the adapter; delivery is
// best-effort and a failed send never rolls back committed state.
type Transport interface {
	UnicastToUser(id domain.UserID, channel string, f Frame)
	Broadcast(topic string, f Frame)
}
