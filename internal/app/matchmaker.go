package app

import "github.com/dmelnik/callrelay/internal/domain"

// findPeer returns some other lobby user who is seeking a call. Matchmaking
// is "second caller finds first caller": the first start-call only sets the
// seeking flag, and a later caller's scan discovers it. Iteration order is
// unspecified; callers may rely only on "a seeker is found if one exists".
//
// Must be called with the write lock held.
func (s *State) findPeer(requester domain.UserID) (domain.UserID, bool) {
	for id, p := range s.presences {
		if id == requester {
			continue
		}
		if p.Seeking {
			return id, true
		}
	}
	return "", false
}
