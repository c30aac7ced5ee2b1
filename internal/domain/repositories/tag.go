package repositories

import (
	"context"

	"appforge/internal/domain/models"
)

// TagRepository defines data access for workspace tags.
type TagRepository interface {
	List(ctx context.Context, tenantID, workspaceID models.ID, tagType int32) ([]models.Tag, error)
	GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.Tag, error)
	Insert(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error
}
