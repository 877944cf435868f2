package service

import (
	"github.com/sessionlab/identity-service/internal/core/domain"
	"github.com/sessionlab/identity-service/internal/core/ports"
)

// SessionResolver classifies the credential cookies on a request into a
// session state. It never fails: every codec outcome degrades to one of
// the three states, so an access-token defect is indistinguishable from
// its absence as far as the caller is concerned.
type SessionResolver struct {
	codec ports.TokenCodec
}

func NewSessionResolver(codec ports.TokenCodec) *SessionResolver {
	return &SessionResolver{codec: codec}
}

// Resolve inspects the access and refresh cookie values (either may be
// empty) and returns the derived session. Priority order:
//
//  1. A verifiable access token wins outright.
//  2. A failed or absent access token with a refresh cookie present means
//     the client can silently upgrade via the refresh endpoint.
//  3. Otherwise the request is anonymous.
func (r *SessionResolver) Resolve(accessCookie, refreshCookie string) domain.Session {
	if accessCookie != "" {
		if claims, err := r.codec.Verify(accessCookie); err == nil {
			return domain.Session{State: domain.SessionAuthenticated, User: claims}
		}
		// Expired and forged tokens degrade identically: fall through to
		// the refresh cookie.
	}

	if refreshCookie != "" {
		return domain.Session{State: domain.SessionPendingRefresh, RefreshToken: refreshCookie}
	}
	return domain.Session{State: domain.SessionUnauthenticated}
}
