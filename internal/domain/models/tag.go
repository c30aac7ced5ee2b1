package models

// Tag labels apps within a workspace. TagType partitions tag namespaces the
// same way FolderType partitions folder hierarchies.
type Tag struct {
	ID          ID     `json:"id" db:"id"`
	TenantID    ID     `json:"tenant_id" db:"tenant_id"`
	WorkspaceID ID     `json:"workspace_id" db:"workspace_id"`
	TagType     int32  `json:"tag_type" db:"tag_type"`
	Name        string `json:"name" db:"name"`
}
