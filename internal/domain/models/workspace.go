package models

type Workspace struct {
	ID          ID      `json:"id" db:"id"`
	TenantID    ID      `json:"tenant_id" db:"tenant_id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}
