package orch

import (
	"encoding/json"
	"time"

	"github.com/dmelnik/callrelay/internal/app"
	"github.com/dmelnik/callrelay/internal/core"
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

const serverSender = "server"

// Orchestrator validates inbound signaling envelopes and drives the lobby
// and room state machine, pushing results back through the transport.
type Orchestrator struct {
	State     *app.State
	Transport core.Transport

	// Bounded retry for a signal that outruns its room assignment.
	RelayAttempts int
	RelayInterval time.Duration
}

func New(state *app.State, tr core.Transport) *Orchestrator {
	return &Orchestrator{
		State:         state,
		Transport:     tr,
		RelayAttempts: 3,
		RelayInterval: 25 * time.Millisecond,
	}
}

// Dispatch handles one inbound envelope. Unrecognized types and blank
// senders are dropped silently: validation failure is expected traffic, not
// an error condition.
func (o *Orchestrator) Dispatch(raw []byte) {
	var msg domain.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debug().Err(err).Str("module", "orch").Msg("unparseable envelope dropped")
		return
	}
	if !msg.Valid() {
		log.Debug().Str("module", "orch").Str("type", msg.Type).Msg("invalid envelope dropped")
		return
	}

	sender := domain.UserID(msg.Sender)
	switch msg.Type {
	case domain.TypeJoin:
		o.handleJoin(sender)
	case domain.TypeStartCall:
		o.handleStartCall(sender)
	case domain.TypeEndCall:
		o.handleEndCall(sender)
	case domain.TypeOffer, domain.TypeAnswer, domain.TypeICECandidate:
		o.relaySignal(domain.RoomID(msg.Room), sender, raw)
	case domain.TypePeerInfo:
		o.handlePeerInfo(sender)
	}
}

// OnSessionEnded is registered with the transport and fires when a client's
// connection is gone for good.
func (o *Orchestrator) OnSessionEnded(id domain.UserID) {
	res := o.State.Reap(id)
	if res.NotifyPeer {
		o.sendCallEnded(res.Peer, "Peer disconnected")
	}
	o.broadcastLobby()
	log.Info().Str("module", "orch").Str("user", string(id)).Msg("session ended")
}

func (o *Orchestrator) unicast(id domain.UserID, channel string, msg domain.Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal outbound")
		return
	}
	o.Transport.UnicastToUser(id, channel, b)
}

func (o *Orchestrator) broadcastLobby() {
	msg := domain.Message{
		Type:   domain.TypeLobbyStatus,
		Sender: serverSender,
		Data:   o.State.Snapshot(),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal lobby status")
		return
	}
	o.Transport.Broadcast(core.TopicLobbyStatus, b)
}
