package token

import (
	"strings"
	"testing"
	"time"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

func TestJWTCodec_SignAndVerify(t *testing.T) {
	codec := NewJWTCodec("secret")

	signed, err := codec.Sign(domain.AccessClaims{UserID: "u1", Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt.IsZero() || !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry not embedded: %+v", claims)
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	codec := NewJWTCodec("secret")

	signed, err := codec.Sign(domain.AccessClaims{UserID: "u1", Username: "alice"}, -time.Second)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := codec.Verify(signed); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	signed, err := NewJWTCodec("right").Sign(domain.AccessClaims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := NewJWTCodec("wrong").Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_TamperedPayload(t *testing.T) {
	codec := NewJWTCodec("secret")

	signed, err := codec.Sign(domain.AccessClaims{UserID: "u1", Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", signed)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := codec.Verify(tampered); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Malformed(t *testing.T) {
	if _, err := NewJWTCodec("k").Verify("not.a.jwt"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
