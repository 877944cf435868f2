package ports

import (
	"time"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

// TokenCodec signs and verifies self-contained access tokens. Expiry is
// embedded in the signed payload so a forwarded or cached token cannot
// outlive its TTL.
type TokenCodec interface {
	Sign(claims domain.AccessClaims, ttl time.Duration) (string, error)
	// Verify fails with domain.ErrTokenExpired when the embedded expiry has
	// passed and domain.ErrInvalidToken on any other defect, including a
	// single mutated byte.
	Verify(token string) (*domain.AccessClaims, error)
}
