package product

import "time"

// Status of an auction, derived from time and stored flags, never persisted.
type Status string

const (
	StatusOpen           Status = "open"
	StatusExpired        Status = "expired"
	StatusManuallyClosed Status = "manuallyClosed"
	StatusWinnerDeclared Status = "winnerDeclared"
)

// StatusOf derives the auction state at the given instant. Winner declaration
// takes precedence over the closed flag, and closing over expiry, so a closed
// auction reports manuallyClosed even after its expiry passes.
func StatusOf(now time.Time, expiry time.Time, biddingClosed bool, hasWinner bool) Status {
	if hasWinner {
		return StatusWinnerDeclared
	}
	if biddingClosed {
		return StatusManuallyClosed
	}
	if !now.Before(expiry) {
		return StatusExpired
	}
	return StatusOpen
}

// AcceptsBids reports whether a bid may be placed at the given instant.
func AcceptsBids(now time.Time, expiry time.Time, biddingClosed bool) bool {
	return StatusOf(now, expiry, biddingClosed, false) == StatusOpen
}
