package ports

import (
	"context"

	"github.com/sessionlab/identity-service/internal/core/domain"
)

// RefreshTokenRepository defines the interface for refresh-token persistence.
// Deletes are idempotent: removing an absent record is not an error.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
