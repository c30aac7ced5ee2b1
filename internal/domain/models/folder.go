package models

// Folder is one node of a per-(tenant, workspace, folder type) hierarchy.
// Seq is the 1-based position among siblings sharing the same parent; within
// one sibling set the stored seq values are always dense: exactly {1..n}.
type Folder struct {
	ID          ID      `json:"id" db:"id"`
	TenantID    ID      `json:"tenant_id" db:"tenant_id"`
	WorkspaceID ID      `json:"workspace_id" db:"workspace_id"`
	ParentID    ID      `json:"parent_id" db:"parent_id"` // RootID = top level
	FolderType  int32   `json:"folder_type" db:"folder_type"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	Seq         int32   `json:"seq" db:"seq"`
}

// FolderTreeNode is a folder with its nested children, sorted by (seq, name).
type FolderTreeNode struct {
	ID          ID                `json:"id"`
	ParentID    ID                `json:"parentId"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Seq         int32             `json:"seq"`
	Children    []*FolderTreeNode `json:"children"`
}
