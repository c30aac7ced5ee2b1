package repositories

import (
	"context"

	"appforge/internal/domain/models"
)

// WorkspaceRepository defines data access for workspaces.
type WorkspaceRepository interface {
	List(ctx context.Context, tenantID models.ID) ([]models.Workspace, error)
	GetByID(ctx context.Context, tenantID, id models.ID) (*models.Workspace, error)
	Insert(ctx context.Context, workspace *models.Workspace) error
	Update(ctx context.Context, workspace *models.Workspace) error
	Delete(ctx context.Context, tenantID, id models.ID) error
}
