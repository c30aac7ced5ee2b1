package models

// Context carries the authenticated identity resolved by the boundary
// middleware: tenant, user and the user's currently selected workspace.
// WorkspaceID may be zero on routes that do not require one.
type Context struct {
	TenantID    ID
	UserID      ID
	WorkspaceID ID
}
