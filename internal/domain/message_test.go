package domain

import (
	"strings"
	"testing"
)

func TestMessageValid(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want bool
	}{
		{"join", Message{Type: TypeJoin, Sender: "alice"}, true},
		{"start-call", Message{Type: TypeStartCall, Sender: "alice"}, true},
		{"offer with room", Message{Type: TypeOffer, Sender: "alice", Room: "room-1"}, true},
		{"unknown type", Message{Type: "shutdown", Sender: "alice"}, false},
		{"server-only type", Message{Type: TypeLobbyStatus, Sender: "alice"}, false},
		{"blank sender", Message{Type: TypeJoin, Sender: ""}, false},
		{"whitespace sender", Message{Type: TypeJoin, Sender: "   "}, false},
		{"oversize sender", Message{Type: TypeJoin, Sender: strings.Repeat("x", MaxUserIDLen+1)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.msg.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRoomPeerOf(t *testing.T) {
	r := NewRoom("room-1", "alice", "bob")
	if peer, ok := r.PeerOf("alice"); !ok || peer != "bob" {
		t.Fatalf("PeerOf(alice) = %q, %v", peer, ok)
	}
	if peer, ok := r.PeerOf("bob"); !ok || peer != "alice" {
		t.Fatalf("PeerOf(bob) = %q, %v", peer, ok)
	}
	if _, ok := r.PeerOf("mallory"); ok {
		t.Fatalf("expected no peer for non-member")
	}
}
