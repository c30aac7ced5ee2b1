package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"appforge/internal/cache"
	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
	"appforge/internal/domain/services"
)

type workspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
	txManager     repositories.TransactionManager
	registry      *SubscriberRegistry
	workspaces    *cache.WorkspaceCache
	idGen         IDGenerator
	defaultName   func(ctx context.Context) string
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service. defaultName supplies
// the name used when a tenant's first workspace is auto-created, localized
// from the request context.
func NewWorkspaceService(
	workspaceRepo repositories.WorkspaceRepository,
	txManager repositories.TransactionManager,
	registry *SubscriberRegistry,
	workspaces *cache.WorkspaceCache,
	idGen IDGenerator,
	defaultName func(ctx context.Context) string,
	logger *slog.Logger,
) services.WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		txManager:     txManager,
		registry:      registry,
		workspaces:    workspaces,
		idGen:         idGen,
		defaultName:   defaultName,
		logger:        logger,
	}
}

func (s *workspaceService) List(ctx context.Context, rc models.Context) ([]services.WorkspaceView, error) {
	workspaces, err := s.workspaceRepo.List(ctx, rc.TenantID)
	if err != nil {
		return nil, err
	}

	views := make([]services.WorkspaceView, 0, len(workspaces))
	for _, w := range workspaces {
		views = append(views, services.WorkspaceView{
			ID:          w.ID,
			Name:        w.Name,
			Description: w.Description,
		})
	}

	// Flag the caller's current workspace; first access selects and caches
	// the first workspace of the tenant.
	selectedID, ok := s.workspaces.Get(rc.UserID)
	if !ok && len(workspaces) > 0 {
		selectedID = workspaces[0].ID
		s.workspaces.Switch(rc.UserID, selectedID)
	}
	for i := range views {
		if views[i].ID == selectedID {
			views[i].Selected = true
		}
	}

	return views, nil
}

// Create inserts the workspace and dispatches the subscriber registry inside
// the same transaction, so a failed bootstrap leaves no half-created
// workspace behind.
func (s *workspaceService) Create(ctx context.Context, rc models.Context, req *services.WorkspaceRequest) (models.ID, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return 0, err
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return 0, err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.workspaceRepo.Insert(txCtx, &models.Workspace{
			ID:          id,
			TenantID:    rc.TenantID,
			Name:        req.Name,
			Description: req.Description,
		}); err != nil {
			return err
		}
		return s.registry.Dispatch(txCtx, rc.TenantID, id)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("workspace created", "id", id, "tenant_id", rc.TenantID)
	return id, nil
}

func (s *workspaceService) Update(ctx context.Context, rc models.Context, id models.ID, req *services.WorkspaceRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return err
	}

	workspace, err := s.mustGet(ctx, rc.TenantID, id)
	if err != nil {
		return err
	}

	workspace.Name = req.Name
	workspace.Description = req.Description
	return s.workspaceRepo.Update(ctx, workspace)
}

func (s *workspaceService) Delete(ctx context.Context, rc models.Context, id models.ID) error {
	if rc.WorkspaceID == id {
		return domain.E(domain.CodeWorkspaceCurrentCannotDelete)
	}
	return s.workspaceRepo.Delete(ctx, rc.TenantID, id)
}

func (s *workspaceService) Switch(ctx context.Context, rc models.Context, id models.ID) error {
	if _, err := s.mustGet(ctx, rc.TenantID, id); err != nil {
		return err
	}
	s.workspaces.Switch(rc.UserID, id)
	return nil
}

// ResolveCurrent is the read-through path used by the auth boundary: cached
// selection, else the tenant's first workspace, else a freshly bootstrapped
// default workspace.
func (s *workspaceService) ResolveCurrent(ctx context.Context, tenantID, userID models.ID) (models.ID, error) {
	return s.workspaces.Resolve(ctx, userID, func(ctx context.Context) (models.ID, error) {
		workspaces, err := s.workspaceRepo.List(ctx, tenantID)
		if err != nil {
			return 0, err
		}
		if len(workspaces) > 0 {
			return workspaces[0].ID, nil
		}

		id, err := s.idGen.NextID()
		if err != nil {
			return 0, err
		}
		name := s.defaultName(ctx)
		err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if err := s.workspaceRepo.Insert(txCtx, &models.Workspace{
				ID:       id,
				TenantID: tenantID,
				Name:     name,
			}); err != nil {
				return err
			}
			return s.registry.Dispatch(txCtx, tenantID, id)
		})
		if err != nil {
			return 0, err
		}

		s.logger.Info("default workspace created", "id", id, "tenant_id", tenantID)
		return id, nil
	})
}

func (s *workspaceService) mustGet(ctx context.Context, tenantID, id models.ID) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.E(domain.CodeWorkspaceNotExist)
	}
	return workspace, nil
}
