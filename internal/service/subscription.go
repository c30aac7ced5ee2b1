package service

import (
	"context"
	"fmt"
	"log/slog"

	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
)

// SubscriberRegistry is the explicit, ordered list of workspace subscribers.
// It is built in the composition root; there is no global auto-registration.
type SubscriberRegistry struct {
	subscribers []services.WorkspaceSubscriber
	logger      *slog.Logger
}

func NewSubscriberRegistry(logger *slog.Logger) *SubscriberRegistry {
	return &SubscriberRegistry{logger: logger}
}

// Register appends a subscriber; dispatch order is registration order.
func (r *SubscriberRegistry) Register(sub services.WorkspaceSubscriber) {
	r.subscribers = append(r.subscribers, sub)
}

// Dispatch invokes every subscriber synchronously, stopping at the first
// failure so a broken bootstrap aborts the enclosing transaction.
func (r *SubscriberRegistry) Dispatch(ctx context.Context, tenantID, workspaceID models.ID) error {
	for _, sub := range r.subscribers {
		if err := sub.OnWorkspaceCreated(ctx, tenantID, workspaceID); err != nil {
			return fmt.Errorf("workspace subscriber %s: %w", sub.Topic(), err)
		}
		r.logger.Debug("workspace subscriber consumed",
			"topic", sub.Topic(),
			"workspace_id", workspaceID,
		)
	}
	return nil
}

// folderBootstrap creates the default root folder of every new workspace.
type folderBootstrap struct {
	folders     services.FolderService
	defaultName func(ctx context.Context) string
}

// NewFolderBootstrap builds the folder subscriber. defaultName is resolved at
// dispatch time from the request context, so the name follows the caller's
// negotiated locale.
func NewFolderBootstrap(folders services.FolderService, defaultName func(ctx context.Context) string) services.WorkspaceSubscriber {
	return &folderBootstrap{folders: folders, defaultName: defaultName}
}

func (b *folderBootstrap) Topic() string { return "workspace_folder" }

func (b *folderBootstrap) OnWorkspaceCreated(ctx context.Context, tenantID, workspaceID models.ID) error {
	return b.folders.CreateDefault(ctx, tenantID, workspaceID, 1, b.defaultName(ctx))
}
