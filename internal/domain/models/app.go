package models

// App is an application shell living inside a folder. Its editable definition
// is a single draft document; releases snapshot the draft under a version.
type App struct {
	ID          ID      `json:"id" db:"id"`
	TenantID    ID      `json:"tenant_id" db:"tenant_id"`
	WorkspaceID ID      `json:"workspace_id" db:"workspace_id"`
	FolderID    ID      `json:"folder_id" db:"folder_id"`
	AppType     int32   `json:"app_type" db:"app_type"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	TagIDs      IDList  `json:"tag_ids"` // aggregated from app_tag, not a column
}

// AppDraft is the mutable working copy of an app definition.
type AppDraft struct {
	ID          ID     `db:"id"`
	TenantID    ID     `db:"tenant_id"`
	WorkspaceID ID     `db:"workspace_id"`
	AppID       ID     `db:"app_id"`
	Content     string `db:"content"`
}

// AppRelease is an immutable published version of an app. Version is the raw
// "major.minor.patch-pre" string; the parsed parts are stored alongside for
// ordering queries and stay nil when a part is absent or non-numeric.
type AppRelease struct {
	ID          ID      `db:"id"`
	TenantID    ID      `db:"tenant_id"`
	WorkspaceID ID      `db:"workspace_id"`
	AppID       ID      `db:"app_id"`
	Version     string  `db:"version"`
	Major       *int32  `db:"major"`
	Minor       *int32  `db:"minor"`
	Patch       *int32  `db:"patch"`
	PreRelease  *string `db:"pre_release"`
	Description *string `db:"description"`
	IsLatest    bool    `db:"is_latest"`
}

// AppReleaseContent is the frozen draft snapshot belonging to one release.
type AppReleaseContent struct {
	ID           ID     `db:"id"`
	TenantID     ID     `db:"tenant_id"`
	WorkspaceID  ID     `db:"workspace_id"`
	AppReleaseID ID     `db:"app_release_id"`
	Content      string `db:"content"`
}
