package services

import (
	"context"

	"appforge/internal/domain/models"
)

type CreateAppRequest struct {
	FolderID    models.ID `json:"folderId"`
	AppType     int32     `json:"appType"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

type UpdateAppRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateAppDraftRequest struct {
	Content string `json:"content"`
}

type UpdateAppTagsRequest struct {
	TagIDs models.IDList `json:"tagIds"`
}

type CloneAppRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ReleaseAppRequest struct {
	Version     string  `json:"version"`
	Description *string `json:"description,omitempty"`
}

// AppListQuery mirrors the list endpoint's query string.
type AppListQuery struct {
	FolderID *models.ID
	AppType  *int32
	Name     *string
	TagIDs   models.IDList
}

// AppView is the listing shape for apps.
type AppView struct {
	ID          models.ID     `json:"id"`
	FolderID    models.ID     `json:"folderId"`
	AppType     int32         `json:"appType"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	TagIDs      models.IDList `json:"tagIds"`
}

type AppService interface {
	List(ctx context.Context, rc models.Context, query AppListQuery) ([]AppView, error)
	Create(ctx context.Context, rc models.Context, req *CreateAppRequest) (models.ID, error)
	Update(ctx context.Context, rc models.Context, id models.ID, req *UpdateAppRequest) error

	// Delete removes the app together with its draft, releases, release
	// contents and tag attachments.
	Delete(ctx context.Context, rc models.Context, id models.ID) error

	// GetDraft returns the working copy; an app without a saved draft yields
	// empty content.
	GetDraft(ctx context.Context, rc models.Context, id models.ID) (string, error)
	UpdateDraft(ctx context.Context, rc models.Context, id models.ID, req *UpdateAppDraftRequest) error

	// Clone copies the app and its draft under a new name.
	Clone(ctx context.Context, rc models.Context, id models.ID, req *CloneAppRequest) (models.ID, error)

	// Release snapshots the draft under a version and marks it latest.
	Release(ctx context.Context, rc models.Context, id models.ID, req *ReleaseAppRequest) error

	// UpdateTags replaces the app's tag set.
	UpdateTags(ctx context.Context, rc models.Context, id models.ID, req *UpdateAppTagsRequest) error
}
