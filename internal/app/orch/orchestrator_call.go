package orch

import (
	"github.com/dmelnik/callrelay/internal/core"
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) handleJoin(id domain.UserID) {
	o.State.Join(id)
	o.broadcastLobby()
}

func (o *Orchestrator) handleStartCall(id domain.UserID) {
	if !o.State.MarkSeeking(id) {
		log.Debug().Str("module", "orch").Str("user", string(id)).Msg("start-call from outside the lobby")
		return
	}

	res, ok := o.State.Pair(id)
	if !ok {
		// First caller: stays in the lobby, seeking, until a later
		// start-call scan discovers them.
		o.broadcastLobby()
		return
	}

	o.sendAssignment(res.Offerer, domain.TypeOfferer, res.RoomID)
	o.sendAssignment(res.Answerer, domain.TypeAnswerer, res.RoomID)
}

func (o *Orchestrator) sendAssignment(id domain.UserID, role string, roomID domain.RoomID) {
	o.unicast(id, core.ChannelRoomAssignment, domain.Message{
		Type:      role,
		Sender:    serverSender,
		Recipient: string(id),
		Data:      string(roomID),
	})
}

func (o *Orchestrator) handleEndCall(id domain.UserID) {
	if peer, ok := o.State.LeaveRoom(id); ok {
		o.sendCallEnded(peer, "Peer disconnected")
	}
	// The caller re-enters the lobby fresh; the former peer does not, they
	// must join explicitly.
	o.handleJoin(id)
}

func (o *Orchestrator) sendCallEnded(id domain.UserID, reason string) {
	o.unicast(id, core.ChannelCallEnded, domain.Message{
		Type:      domain.TypeCallEnded,
		Sender:    serverSender,
		Recipient: string(id),
		Data:      reason,
	})
}
