package repositories

import (
	"context"

	"appforge/internal/domain/models"
)

// AppQuery narrows app listings. Nil fields mean "any"; TagIDs matches apps
// carrying at least one of the given tags.
type AppQuery struct {
	FolderID *models.ID
	AppType  *int32
	Name     *string
	TagIDs   models.IDList
}

// AppRepository defines data access for apps, their draft content, their
// releases and the app/tag join rows.
type AppRepository interface {
	List(ctx context.Context, tenantID, workspaceID models.ID, query AppQuery) ([]models.App, error)
	GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.App, error)
	Insert(ctx context.Context, app *models.App) error
	Update(ctx context.Context, app *models.App) error
	Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error

	// Tags.
	ReplaceTags(ctx context.Context, tenantID, workspaceID, appID models.ID, tagIDs models.IDList) error
	DetachTag(ctx context.Context, tenantID, workspaceID, tagID models.ID) error

	// Draft content.
	GetDraft(ctx context.Context, tenantID, workspaceID, appID models.ID) (*models.AppDraft, error)
	UpsertDraft(ctx context.Context, draft *models.AppDraft) error
	DeleteDraft(ctx context.Context, tenantID, workspaceID, appID models.ID) error

	// Releases.
	ClearLatest(ctx context.Context, tenantID, workspaceID, appID models.ID) error
	InsertRelease(ctx context.Context, release *models.AppRelease) error
	InsertReleaseContent(ctx context.Context, content *models.AppReleaseContent) error
	DeleteReleases(ctx context.Context, tenantID, workspaceID, appID models.ID) error
	DeleteReleaseContents(ctx context.Context, tenantID, workspaceID, appID models.ID) error
}
