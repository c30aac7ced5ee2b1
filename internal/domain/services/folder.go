package services

import (
	"context"

	"appforge/internal/domain/models"
)

// CreateFolderRequest carries the payload for folder creation.
type CreateFolderRequest struct {
	ParentID    models.ID `json:"parentId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

// UpdateFolderRequest renames a folder; position and parent are untouched.
type UpdateFolderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// MoveFolderRequest reparents a folder and places it at Seq among the new
// siblings. ParentID zero targets the root level.
type MoveFolderRequest struct {
	ParentID models.ID `json:"parentId"`
	Seq      int32     `json:"seq"`
}

// FolderService owns the sibling sequence invariant: for every parent the
// child seq values form exactly {1..n}.
type FolderService interface {
	// GetTree returns the fully materialized folder forest of one type,
	// children ordered by (seq, name).
	GetTree(ctx context.Context, rc models.Context, folderType int32) ([]*models.FolderTreeNode, error)

	// Create appends a folder at the end of its sibling set and returns the
	// new id.
	Create(ctx context.Context, rc models.Context, folderType int32, req *CreateFolderRequest) (models.ID, error)

	// Rename updates name and description only.
	Rename(ctx context.Context, rc models.Context, id models.ID, req *UpdateFolderRequest) error

	// Delete removes a childless folder and compresses the vacated scope.
	Delete(ctx context.Context, rc models.Context, id models.ID) error

	// Move reparents a folder, renumbering both affected sibling sets.
	Move(ctx context.Context, rc models.Context, id models.ID, req *MoveFolderRequest) error

	// CreateDefault bootstraps the default root folder of a new workspace.
	CreateDefault(ctx context.Context, tenantID, workspaceID models.ID, folderType int32, name string) error
}
