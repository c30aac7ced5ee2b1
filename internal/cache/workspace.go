// Package cache holds the process-wide read-through cache mapping a user to
// their currently selected workspace. It is an explicit component injected
// into the auth boundary rather than ambient static state.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"appforge/internal/domain/models"
)

const (
	workspaceTTL  = 24 * time.Hour
	purgeInterval = time.Hour
)

// WorkspaceCache maps user id -> selected workspace id with a TTL.
type WorkspaceCache struct {
	store *gocache.Cache
}

func NewWorkspaceCache() *WorkspaceCache {
	return &WorkspaceCache{store: gocache.New(workspaceTTL, purgeInterval)}
}

// Resolve returns the cached workspace for the user, loading and caching it
// through load on a miss. A zero workspace id is never cached.
func (c *WorkspaceCache) Resolve(ctx context.Context, userID models.ID, load func(context.Context) (models.ID, error)) (models.ID, error) {
	if v, ok := c.store.Get(userID.String()); ok {
		return v.(models.ID), nil
	}
	id, err := load(ctx)
	if err != nil || id.IsZero() {
		return 0, err
	}
	c.store.SetDefault(userID.String(), id)
	return id, nil
}

// Get returns the cached workspace for the user, if any.
func (c *WorkspaceCache) Get(userID models.ID) (models.ID, bool) {
	v, ok := c.store.Get(userID.String())
	if !ok {
		return 0, false
	}
	return v.(models.ID), true
}

// Switch pins the user's selected workspace.
func (c *WorkspaceCache) Switch(userID, workspaceID models.ID) {
	c.store.SetDefault(userID.String(), workspaceID)
}

// Forget drops the user's cached selection.
func (c *WorkspaceCache) Forget(userID models.ID) {
	c.store.Delete(userID.String())
}
