package signal

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dmelnik/callrelay/internal/core"
	"github.com/dmelnik/callrelay/internal/domain"
)

// Hub tracks live websocket connections and implements core.Transport.
// Connections are keyed by session id; a user id is bound to a session once
// the client sends its first join, and the bound id is what unicasts and
// disconnect notifications are addressed by.
type Hub struct {
	mu       sync.RWMutex
	conns    map[core.SessionID]*wsSignalConn
	users    map[domain.UserID]core.SessionID
	sessions map[core.SessionID]domain.UserID

	onSessionEnded func(domain.UserID)
}

func NewHub() *Hub {
	return &Hub{
		conns:    make(map[core.SessionID]*wsSignalConn),
		users:    make(map[domain.UserID]core.SessionID),
		sessions: make(map[core.SessionID]domain.UserID),
	}
}

// OnSessionEnded registers the callback invoked, with the bound user id,
// when a session's connection is gone.
func (h *Hub) OnSessionEnded(cb func(domain.UserID)) {
	h.onSessionEnded = cb
}

func (h *Hub) add(sid core.SessionID, c *wsSignalConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[sid]; ok && old != c {
		old.Close()
	}
	h.conns[sid] = c
}

// BindUser associates the session with a user identity. A reconnect with
// the same user id simply moves the binding to the new session.
func (h *Hub) BindUser(sid core.SessionID, id domain.UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if oldSID, ok := h.users[id]; ok && oldSID != sid {
		delete(h.sessions, oldSID)
	}
	h.users[id] = sid
	h.sessions[sid] = id
	log.Info().Str("module", "signal.hub").Str("sid", string(sid)).Str("user", string(id)).Msg("bound user")
}

func (h *Hub) drop(sid core.SessionID) {
	h.mu.Lock()
	c, ok := h.conns[sid]
	delete(h.conns, sid)
	id, bound := h.sessions[sid]
	if bound {
		delete(h.sessions, sid)
		if h.users[id] == sid {
			delete(h.users, id)
		} else {
			// The user already rebound to a newer session; not our loss
			// to report.
			bound = false
		}
	}
	cb := h.onSessionEnded
	h.mu.Unlock()

	if ok {
		c.Close()
	}
	if bound && cb != nil {
		cb(id)
	}
}

func (h *Hub) UnicastToUser(id domain.UserID, channel string, f core.Frame) {
	h.mu.RLock()
	var c *wsSignalConn
	if sid, ok := h.users[id]; ok {
		c = h.conns[sid]
	}
	h.mu.RUnlock()

	if c == nil {
		log.Debug().Str("module", "signal.hub").Str("user", string(id)).Str("channel", channel).Msg("unicast to unknown user skipped")
		return
	}
	if err := c.TrySend(f); err != nil {
		log.Warn().Err(err).Str("module", "signal.hub").Str("user", string(id)).Str("channel", channel).Msg("unicast dropped")
	}
}

func (h *Hub) Broadcast(topic string, f core.Frame) {
	h.mu.RLock()
	conns := make([]*wsSignalConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.TrySend(f); err != nil {
			log.Warn().Err(err).Str("module", "signal.hub").Str("topic", topic).Msg("broadcast send dropped")
		}
	}
}
