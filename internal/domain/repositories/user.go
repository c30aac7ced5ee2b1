package repositories

import (
	"context"

	"appforge/internal/domain/models"
)

// UserRepository defines data access for users.
type UserRepository interface {
	List(ctx context.Context, tenantID models.ID) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}
