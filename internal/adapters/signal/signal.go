package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dmelnik/callrelay/internal/app/orch"
	"github.com/dmelnik/callrelay/internal/config"
	"github.com/dmelnik/callrelay/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetReadLimit(limit int64)
	SetWriteDeadline(t time.Time) error
	Close() error
}

// SignalWSController owns the websocket endpoint: it upgrades connections,
// runs their pumps and feeds inbound envelopes to the orchestrator.
type SignalWSController struct {
	Hub  *Hub
	Orch *orch.Orchestrator
	Cfg  *config.Config
}

func NewSignalWSController(hub *Hub, o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{Hub: hub, Orch: o, Cfg: cfg}
}

type wsSignalConn struct {
	conn WSConn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Cfg.ReadLimit)

	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	ctl.Hub.add(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
