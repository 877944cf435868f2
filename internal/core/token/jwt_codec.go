// Package token implements the access-token codec as an HMAC-signed JWT.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

// jwtClaims embeds the registered claim set so expiry and issue time
// travel inside the signed payload.
type jwtClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// JWTCodec signs and verifies HS256 access tokens with a process-wide
// secret. It holds no state beyond the key.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

// Sign produces a compact token carrying the claims plus an absolute
// expiry ttl from now.
func (c *JWTCodec) Sign(claims domain.AccessClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   claims.UserID,
		Username: claims.Username,
	})
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Any mutation of the token bytes fails closed with ErrInvalidToken.
func (c *JWTCodec) Verify(tokenString string) (*domain.AccessClaims, error) {
	claims := &jwtClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !t.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.AccessClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
