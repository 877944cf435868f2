package domain

import "time"

// RefreshToken is the server-side record backing a long-lived refresh
// secret. The Token field holds the opaque high-entropy value handed to
// the client; the record id is never exposed outside the store.
//
// Lifecycle: created on login, then live until it is revoked or found
// expired during a refresh attempt, at which point it is deleted. There
// is no transition back once the record is gone.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
