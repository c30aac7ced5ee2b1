package services

import (
	"context"

	"appforge/internal/domain/models"
)

type WorkspaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// WorkspaceView is a workspace plus the per-user selection flag.
type WorkspaceView struct {
	ID          models.ID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Selected    bool      `json:"selected"`
}

type WorkspaceService interface {
	// List returns the tenant's workspaces with the caller's current one
	// flagged; the first workspace becomes current when none is selected yet.
	List(ctx context.Context, rc models.Context) ([]WorkspaceView, error)

	// Create inserts a workspace and synchronously notifies all registered
	// workspace subscribers.
	Create(ctx context.Context, rc models.Context, req *WorkspaceRequest) (models.ID, error)

	Update(ctx context.Context, rc models.Context, id models.ID, req *WorkspaceRequest) error

	// Delete refuses to remove the caller's currently selected workspace.
	Delete(ctx context.Context, rc models.Context, id models.ID) error

	// Switch makes the workspace the caller's current one.
	Switch(ctx context.Context, rc models.Context, id models.ID) error

	// ResolveCurrent returns the caller's selected workspace, lazily creating
	// a default workspace for tenants that have none.
	ResolveCurrent(ctx context.Context, tenantID, userID models.ID) (models.ID, error)
}

// WorkspaceSubscriber reacts to workspace creation. Subscribers are
// registered explicitly in the composition root and invoked synchronously in
// registration order.
type WorkspaceSubscriber interface {
	Topic() string
	OnWorkspaceCreated(ctx context.Context, tenantID, workspaceID models.ID) error
}
