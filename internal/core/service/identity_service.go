package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sessionlab/identity-service/internal/core/domain"
	"github.com/sessionlab/identity-service/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6

	// refreshSecretBytes is the entropy of the opaque refresh secret
	// handed to the client (hex-encoded on the wire).
	refreshSecretBytes = 64
)

// IdentityService implements registration, login and the refresh-token
// lifecycle on top of injected collaborators.
type IdentityService struct {
	users      ports.UserRepository
	tokens     ports.RefreshTokenRepository
	codec      ports.TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIdentityService(users ports.UserRepository, tokens ports.RefreshTokenRepository, codec ports.TokenCodec, accessTTL, refreshTTL time.Duration) *IdentityService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &IdentityService{
		users:      users,
		tokens:     tokens,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register validates the credentials, hashes the password and persists a
// new user, returning its id. Validation reports every violated rule at
// once, not just the first.
func (s *IdentityService) Register(ctx context.Context, username, password string) (string, error) {
	if err := validateCredentials(username, password); err != nil {
		return "", err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// Login verifies the credentials and issues a fresh access/refresh token
// pair. Any refresh tokens the user already holds are removed before the
// new one is stored; the two steps are not atomic and a crash in between
// may leave a duplicate live token, which the threat model accepts.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*domain.PublicUser, string, string, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, "", "", err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", domain.ErrInvalidPassword
	}

	access, err := s.signAccessToken(user)
	if err != nil {
		return nil, "", "", err
	}

	refresh, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}

	return user.Public(), access, refresh, nil
}

// Refresh exchanges a live refresh secret for a new access token. The
// refresh secret itself is not rotated: it stays valid until its original
// expiry or an explicit revoke. An expired record is purged on detection,
// so a second attempt with the same secret fails as unknown.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*domain.PublicUser, string, error) {
	record, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			return nil, "", domain.ErrInvalidRefreshToken
		}
		return nil, "", err
	}

	if record.Expired(time.Now().UTC()) {
		if err := s.tokens.Delete(ctx, record.ID); err != nil {
			return nil, "", err
		}
		return nil, "", domain.ErrRefreshTokenExpired
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, "", err
	}

	access, err := s.signAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user.Public(), access, nil
}

// Revoke deletes the record matching the refresh secret. It is
// idempotent: an unknown secret is a no-op, never an error.
func (s *IdentityService) Revoke(ctx context.Context, refreshToken string) error {
	record, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			return nil
		}
		return err
	}
	return s.tokens.Delete(ctx, record.ID)
}

// RevokeAll deletes every refresh token belonging to userID, logging the
// user out everywhere.
func (s *IdentityService) RevokeAll(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUserID(ctx, userID)
}

func (s *IdentityService) signAccessToken(user *domain.User) (string, error) {
	return s.codec.Sign(domain.AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
	}, s.accessTTL)
}

func (s *IdentityService) issueRefreshToken(ctx context.Context, userID string) (string, error) {
	secret := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate refresh secret: %w", err)
	}

	// Single-live-token policy: drop whatever the user held before.
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     hex.EncodeToString(secret),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}
	return record.Token, nil
}

func validateCredentials(username, password string) error {
	var issues []string
	if len(username) < minUsernameLen {
		issues = append(issues, fmt.Sprintf("username must be at least %d characters", minUsernameLen))
	}
	if len(password) < minPasswordLen {
		issues = append(issues, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if len(issues) > 0 {
		return &domain.ValidationError{Issues: issues}
	}
	return nil
}
