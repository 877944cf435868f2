package ports

import (
	"context"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

// IdentityService orchestrates registration, login and the refresh-token
// lifecycle.
type IdentityService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (*domain.PublicUser, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.PublicUser, string, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID string) error
}
