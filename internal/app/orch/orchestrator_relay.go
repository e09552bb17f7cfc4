package orch

import (
	"time"

	"github.com/dmelnik/callrelay/internal/core"
	"github.com/dmelnik/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// relaySignal forwards the raw payload, untouched, to the other member of
// the room. A client's first signal can arrive fractionally before its own
// room assignment settles, so unknown membership gets a few short retries
// before the frame is dropped. Runs on the per-connection goroutine; the
// wait is bounded by RelayAttempts*RelayInterval.
func (o *Orchestrator) relaySignal(roomID domain.RoomID, sender domain.UserID, raw []byte) {
	if roomID == "" {
		log.Debug().Str("module", "orch").Str("sender", string(sender)).Msg("signal without room dropped")
		return
	}
	for attempt := 1; ; attempt++ {
		if peer, ok := o.State.PeerInRoom(roomID, sender); ok {
			o.Transport.UnicastToUser(peer, core.ChannelSignal, raw)
			return
		}
		if attempt >= o.RelayAttempts {
			break
		}
		time.Sleep(o.RelayInterval)
	}
	log.Debug().Str("module", "orch").
		Str("room", string(roomID)).
		Str("sender", string(sender)).
		Msg("signal for unknown room membership dropped")
}

func (o *Orchestrator) handlePeerInfo(id domain.UserID) {
	if peer, ok := o.State.PeerOf(id); ok {
		o.unicast(id, core.ChannelRoomInfo, domain.Message{
			Type:      domain.TypeRoomInfo,
			Sender:    serverSender,
			Recipient: string(id),
			Data:      []string{string(peer)},
		})
		return
	}
	o.unicast(id, core.ChannelLobbyInfo, domain.Message{
		Type:      domain.TypeLobbyInfo,
		Sender:    serverSender,
		Recipient: string(id),
		Data:      o.State.Snapshot(),
	})
}
