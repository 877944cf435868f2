package domain

import "time"

// SessionState classifies the credentials presented on a request.
type SessionState string

const (
	// SessionAuthenticated means a valid access token was presented.
	SessionAuthenticated SessionState = "authenticated"
	// SessionPendingRefresh means the access token was absent or invalid
	// but a refresh cookie is present; the client can upgrade by calling
	// the refresh endpoint.
	SessionPendingRefresh SessionState = "pending_refresh"
	// SessionUnauthenticated means no usable credential was presented.
	SessionUnauthenticated SessionState = "unauthenticated"
)

// AccessClaims is the identity bundle embedded in a signed access token.
// Existence of a verifiable token is the only proof of validity; nothing
// is persisted server-side.
type AccessClaims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the per-request classification derived from the credential
// cookies. It is recomputed on every request and never stored.
type Session struct {
	State SessionState
	// User carries the verified claims when State is SessionAuthenticated.
	User *AccessClaims
	// RefreshToken carries the raw refresh cookie value when State is
	// SessionPendingRefresh.
	RefreshToken string
}

// Authenticated reports whether the session carries verified claims.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}
