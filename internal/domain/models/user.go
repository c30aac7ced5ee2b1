package models

type User struct {
	ID          ID      `json:"id" db:"id"`
	TenantID    ID      `json:"tenant_id" db:"tenant_id"`
	Name        string  `json:"name" db:"name"`
	Email       string  `json:"email" db:"email"`
	Password    *string `json:"-" db:"password"` // bcrypt hash
	Owner       bool    `json:"owner" db:"owner"`
	Description *string `json:"description" db:"description"`
}
