package signal

import (
	"strings"
	"testing"
	"time"

	"github.com/dmelnik/callrelay/internal/app"
	"github.com/dmelnik/callrelay/internal/app/orch"
	"github.com/dmelnik/callrelay/internal/config"
	"github.com/dmelnik/callrelay/internal/core"
	"github.com/dmelnik/callrelay/internal/domain"
)

type fakeWSConn struct{}

func (fakeWSConn) ReadMessage() (int, []byte, error)      { return 0, nil, nil }
func (fakeWSConn) WriteMessage(mt int, data []byte) error { return nil }
func (fakeWSConn) SetReadLimit(limit int64)               {}
func (fakeWSConn) SetWriteDeadline(t time.Time) error     { return nil }
func (fakeWSConn) Close() error                           { return nil }

func newTestConn(buf int) *wsSignalConn {
	return &wsSignalConn{conn: fakeWSConn{}, send: make(chan core.Frame, buf)}
}

func recvFrame(tb testing.TB, c *wsSignalConn) []byte {
	tb.Helper()
	select {
	case f := <-c.send:
		return f
	default:
		tb.Fatalf("expected a queued frame")
		return nil
	}
}

func TestHubUnicastReachesBoundUserOnly(t *testing.T) {
	h := NewHub()
	alice := newTestConn(4)
	bob := newTestConn(4)
	h.add("sid-a", alice)
	h.add("sid-b", bob)
	h.BindUser("sid-a", "alice")
	h.BindUser("sid-b", "bob")

	h.UnicastToUser("bob", core.ChannelSignal, []byte("hello"))

	if got := recvFrame(t, bob); string(got) != "hello" {
		t.Fatalf("bob got %q", got)
	}
	select {
	case f := <-alice.send:
		t.Fatalf("alice received stray frame %q", f)
	default:
	}

	// Unknown targets are skipped, not fatal.
	h.UnicastToUser("mallory", core.ChannelSignal, []byte("x"))
}

func TestHubBroadcastReachesEveryConnection(t *testing.T) {
	h := NewHub()
	conns := []*wsSignalConn{newTestConn(1), newTestConn(1), newTestConn(1)}
	for i, c := range conns {
		h.add(core.SessionID(rune('a'+i)), c)
	}

	h.Broadcast(core.TopicLobbyStatus, []byte("status"))

	for i, c := range conns {
		if got := recvFrame(t, c); string(got) != "status" {
			t.Fatalf("conn %d got %q", i, got)
		}
	}
}

func TestTrySendBackpressureDrops(t *testing.T) {
	c := newTestConn(1)
	if err := c.TrySend([]byte("one")); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := c.TrySend([]byte("two")); err != ErrBackpressure {
		t.Fatalf("expected backpressure, got %v", err)
	}
	c.Close()
	if err := c.TrySend([]byte("three")); err == nil {
		t.Fatalf("send after close must fail")
	}
}

func TestHubDropFiresSessionEnded(t *testing.T) {
	h := NewHub()
	var ended []domain.UserID
	h.OnSessionEnded(func(id domain.UserID) { ended = append(ended, id) })

	h.add("sid-a", newTestConn(1))
	h.BindUser("sid-a", "alice")
	h.drop("sid-a")

	if len(ended) != 1 || ended[0] != "alice" {
		t.Fatalf("expected one session-ended for alice, got %v", ended)
	}

	// Unbound sessions vanish silently.
	h.add("sid-b", newTestConn(1))
	h.drop("sid-b")
	if len(ended) != 1 {
		t.Fatalf("unbound session must not fire the callback")
	}
}

func TestHandleInboundBindsValidatedSendersOnly(t *testing.T) {
	h := NewHub()
	ctl := NewSignalWSController(h, orch.New(app.NewState(), h), &config.Config{})
	h.add("sid-a", newTestConn(1))

	for _, raw := range []string{
		`{"type":"join","sender":"   "}`,
		`{"type":"join","sender":"` + strings.Repeat("x", domain.MaxUserIDLen+1) + `"}`,
		`{"type":"offer","sender":"alice","room":"room-1"}`,
	} {
		ctl.handleInbound("sid-a", []byte(raw))
	}
	h.mu.RLock()
	bound := len(h.users)
	h.mu.RUnlock()
	if bound != 0 {
		t.Fatalf("no binding expected for rejected or non-join envelopes, got %d", bound)
	}

	ctl.handleInbound("sid-a", []byte(`{"type":"join","sender":"alice"}`))
	h.mu.RLock()
	sid, ok := h.users["alice"]
	h.mu.RUnlock()
	if !ok || sid != "sid-a" {
		t.Fatalf("valid join must bind the session, got %q, %v", sid, ok)
	}
}

func TestHubRebindSuppressesStaleDisconnect(t *testing.T) {
	h := NewHub()
	var ended []domain.UserID
	h.OnSessionEnded(func(id domain.UserID) { ended = append(ended, id) })

	h.add("sid-old", newTestConn(1))
	h.BindUser("sid-old", "alice")

	// Alice reconnects before the old socket is torn down.
	h.add("sid-new", newTestConn(1))
	h.BindUser("sid-new", "alice")

	h.drop("sid-old")
	if len(ended) != 0 {
		t.Fatalf("stale session teardown must not reap a rebound user: %v", ended)
	}

	h.drop("sid-new")
	if len(ended) != 1 || ended[0] != "alice" {
		t.Fatalf("expected the live session to report alice, got %v", ended)
	}
}
