package repositories

import (
	"context"

	"appforge/internal/domain/models"
)

// FolderScope pins one sibling set: all folders of a type sharing a parent
// within a tenant's workspace. Sequence numbering is independent per scope.
type FolderScope struct {
	TenantID    models.ID
	WorkspaceID models.ID
	FolderType  int32
}

// FolderRepository defines data access for folder rows. Every statement is
// single-purpose so the service layer can compose them under one transaction.
type FolderRepository interface {
	// List returns all folders of the scope as a flat, unordered slice.
	List(ctx context.Context, scope FolderScope) ([]models.Folder, error)

	// GetByID retrieves one folder within the tenant/workspace.
	GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.Folder, error)

	// Insert persists a new folder row.
	Insert(ctx context.Context, folder *models.Folder) error

	// Update rewrites name and description in place.
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes the row.
	Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error

	// CountChildren counts direct children of a folder.
	CountChildren(ctx context.Context, scope FolderScope, parentID models.ID) (int, error)

	// MaxSeq returns the highest sibling seq under parentID, or 0 when the
	// sibling set is empty.
	MaxSeq(ctx context.Context, scope FolderScope, parentID models.ID) (int32, error)

	// ShiftSeq opens a slot: siblings with seq >= fromSeq move up by one.
	ShiftSeq(ctx context.Context, scope FolderScope, parentID models.ID, fromSeq int32) error

	// CompressSeq closes a gap: siblings with seq > fromSeq move down by one.
	CompressSeq(ctx context.Context, scope FolderScope, parentID models.ID, fromSeq int32) error

	// ShiftRange adds delta to siblings with lo <= seq <= hi, excluding the
	// folder identified by excludeID. Used for same-parent reorders.
	ShiftRange(ctx context.Context, scope FolderScope, parentID models.ID, lo, hi, delta int32, excludeID models.ID) error

	// UpdateParentAndSeq reparents a folder and assigns its new position.
	UpdateParentAndSeq(ctx context.Context, tenantID, workspaceID, id, parentID models.ID, seq int32) error
}
