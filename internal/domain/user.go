// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxUserIDLen = 64

var (
	ErrUserIDEmpty   = errors.New("user id empty")
	ErrUserIDTooLong = errors.New("user id too long")
)

type UserID string

// Presence is a lobby entry: a connected user who is not in a call.
// Seeking means the user has requested a call and is waiting for a peer.
type Presence struct {
	UserID       UserID `json:"user_id"`
	Seeking      bool   `json:"seeking"`
	LastActiveAt int64  `json:"last_active"`
}

// NewPresence is a tiny helper to avoid ad-hoc struct literals in callers.
func NewPresence(id UserID, nowMillis int64) *Presence {
	return &Presence{UserID: id, LastActiveAt: nowMillis}
}

func ValidateUserID(id UserID) error {
	if len(id) == 0 {
		return ErrUserIDEmpty
	}
	if len(id) > MaxUserIDLen {
		return ErrUserIDTooLong
	}
	return nil
}
