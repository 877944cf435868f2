package service

import (
	"testing"
	"time"

	"github.com/sessionlab/identity-service/internal/core/domain"
	"github.com/sessionlab/identity-service/internal/core/token"
)

func TestSessionResolver_ValidAccessToken(t *testing.T) {
	codec := token.NewJWTCodec("secret")
	resolver := NewSessionResolver(codec)

	access, err := codec.Sign(domain.AccessClaims{UserID: "u1", Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	session := resolver.Resolve(access, "")
	if !session.Authenticated() {
		t.Fatalf("expected authenticated session, got %+v", session)
	}
	if session.User.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", session.User)
	}
}

func TestSessionResolver_AccessWinsOverRefresh(t *testing.T) {
	codec := token.NewJWTCodec("secret")
	resolver := NewSessionResolver(codec)

	access, err := codec.Sign(domain.AccessClaims{UserID: "u1", Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	session := resolver.Resolve(access, "some-refresh-secret")
	if session.State != domain.SessionAuthenticated {
		t.Fatalf("expected authenticated, got %s", session.State)
	}
}

func TestSessionResolver_ExpiredAccessFallsThroughToRefresh(t *testing.T) {
	codec := token.NewJWTCodec("secret")
	resolver := NewSessionResolver(codec)

	expired, err := codec.Sign(domain.AccessClaims{UserID: "u1"}, -time.Second)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	session := resolver.Resolve(expired, "refresh-secret")
	if session.State != domain.SessionPendingRefresh {
		t.Fatalf("expected pending_refresh, got %s", session.State)
	}
	if session.RefreshToken != "refresh-secret" {
		t.Fatalf("refresh cookie not carried: %+v", session)
	}
}

func TestSessionResolver_ForgedAccessNoRefresh(t *testing.T) {
	resolver := NewSessionResolver(token.NewJWTCodec("secret"))

	session := resolver.Resolve("garbage.token.bytes", "")
	if session.State != domain.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", session.State)
	}
}

func TestSessionResolver_RefreshOnly(t *testing.T) {
	resolver := NewSessionResolver(token.NewJWTCodec("secret"))

	session := resolver.Resolve("", "refresh-secret")
	if session.State != domain.SessionPendingRefresh {
		t.Fatalf("expected pending_refresh, got %s", session.State)
	}
	if session.Authenticated() {
		t.Fatalf("pending refresh must not count as authenticated")
	}
}

func TestSessionResolver_NoCredentials(t *testing.T) {
	resolver := NewSessionResolver(token.NewJWTCodec("secret"))

	session := resolver.Resolve("", "")
	if session.State != domain.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", session.State)
	}
}
