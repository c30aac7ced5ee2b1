package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
	"appforge/internal/domain/services"
)

type appService struct {
	appRepo    repositories.AppRepository
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	idGen      IDGenerator
	logger     *slog.Logger
}

// NewAppService creates a new app service
func NewAppService(
	appRepo repositories.AppRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	idGen IDGenerator,
	logger *slog.Logger,
) services.AppService {
	return &appService{
		appRepo:    appRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *appService) List(ctx context.Context, rc models.Context, query services.AppListQuery) ([]services.AppView, error) {
	apps, err := s.appRepo.List(ctx, rc.TenantID, rc.WorkspaceID, repositories.AppQuery{
		FolderID: query.FolderID,
		AppType:  query.AppType,
		Name:     query.Name,
		TagIDs:   query.TagIDs,
	})
	if err != nil {
		return nil, err
	}

	views := make([]services.AppView, 0, len(apps))
	for _, a := range apps {
		views = append(views, services.AppView{
			ID:          a.ID,
			FolderID:    a.FolderID,
			AppType:     a.AppType,
			Name:        a.Name,
			Description: a.Description,
			TagIDs:      a.TagIDs,
		})
	}
	return views, nil
}

func (s *appService) Create(ctx context.Context, rc models.Context, req *services.CreateAppRequest) (models.ID, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return 0, err
	}

	folder, err := s.folderRepo.GetByID(ctx, rc.TenantID, rc.WorkspaceID, req.FolderID)
	if err != nil {
		return 0, fmt.Errorf("load app folder: %w", err)
	}
	if folder == nil {
		return 0, domain.E(domain.CodeAppFolderNotExist)
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return 0, err
	}

	err = s.appRepo.Insert(ctx, &models.App{
		ID:          id,
		TenantID:    rc.TenantID,
		WorkspaceID: rc.WorkspaceID,
		FolderID:    req.FolderID,
		AppType:     req.AppType,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("app created", "id", id, "folder_id", req.FolderID, "workspace_id", rc.WorkspaceID)
	return id, nil
}

func (s *appService) Update(ctx context.Context, rc models.Context, id models.ID, req *services.UpdateAppRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return err
	}

	app, err := s.mustGet(ctx, rc, id)
	if err != nil {
		return err
	}

	app.Name = req.Name
	app.Description = req.Description
	return s.appRepo.Update(ctx, app)
}

// Delete removes the app with its draft, releases, release contents and tag
// attachments as one unit.
func (s *appService) Delete(ctx context.Context, rc models.Context, id models.ID) error {
	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return err
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.appRepo.Delete(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		if err := s.appRepo.DeleteDraft(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		// Release contents reference release rows, so they go first.
		if err := s.appRepo.DeleteReleaseContents(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		if err := s.appRepo.DeleteReleases(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		return s.appRepo.ReplaceTags(txCtx, rc.TenantID, rc.WorkspaceID, id, nil)
	})
}

func (s *appService) GetDraft(ctx context.Context, rc models.Context, id models.ID) (string, error) {
	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return "", err
	}

	draft, err := s.appRepo.GetDraft(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return "", err
	}
	if draft == nil {
		return "", nil
	}
	return draft.Content, nil
}

func (s *appService) UpdateDraft(ctx context.Context, rc models.Context, id models.ID, req *services.UpdateAppDraftRequest) error {
	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return err
	}

	draftID, err := s.idGen.NextID()
	if err != nil {
		return err
	}

	return s.appRepo.UpsertDraft(ctx, &models.AppDraft{
		ID:          draftID,
		TenantID:    rc.TenantID,
		WorkspaceID: rc.WorkspaceID,
		AppID:       id,
		Content:     req.Content,
	})
}

// Clone copies the app shell and, when present, its draft content.
func (s *appService) Clone(ctx context.Context, rc models.Context, id models.ID, req *services.CloneAppRequest) (models.ID, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return 0, err
	}

	original, err := s.mustGet(ctx, rc, id)
	if err != nil {
		return 0, err
	}

	draft, err := s.appRepo.GetDraft(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return 0, err
	}

	newID, err := s.idGen.NextID()
	if err != nil {
		return 0, err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.appRepo.Insert(txCtx, &models.App{
			ID:          newID,
			TenantID:    rc.TenantID,
			WorkspaceID: rc.WorkspaceID,
			FolderID:    original.FolderID,
			AppType:     original.AppType,
			Name:        req.Name,
			Description: req.Description,
		}); err != nil {
			return err
		}

		if draft == nil {
			return nil
		}
		draftID, err := s.idGen.NextID()
		if err != nil {
			return err
		}
		return s.appRepo.UpsertDraft(txCtx, &models.AppDraft{
			ID:          draftID,
			TenantID:    rc.TenantID,
			WorkspaceID: rc.WorkspaceID,
			AppID:       newID,
			Content:     draft.Content,
		})
	})
	if err != nil {
		return 0, err
	}

	return newID, nil
}

// Release freezes the current draft under a version and marks it latest.
func (s *appService) Release(ctx context.Context, rc models.Context, id models.ID, req *services.ReleaseAppRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Version, validation.Required, validation.Length(1, 64)),
	); err != nil {
		return err
	}

	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return err
	}

	draft, err := s.appRepo.GetDraft(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.E(domain.CodeAppDraftNotExist)
	}

	releaseID, err := s.idGen.NextID()
	if err != nil {
		return err
	}
	contentID, err := s.idGen.NextID()
	if err != nil {
		return err
	}

	major, minor, patch, pre := parseVersion(req.Version)

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.appRepo.ClearLatest(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		if err := s.appRepo.InsertRelease(txCtx, &models.AppRelease{
			ID:          releaseID,
			TenantID:    rc.TenantID,
			WorkspaceID: rc.WorkspaceID,
			AppID:       id,
			Version:     req.Version,
			Major:       major,
			Minor:       minor,
			Patch:       patch,
			PreRelease:  pre,
			Description: req.Description,
			IsLatest:    true,
		}); err != nil {
			return err
		}
		return s.appRepo.InsertReleaseContent(txCtx, &models.AppReleaseContent{
			ID:           contentID,
			TenantID:     rc.TenantID,
			WorkspaceID:  rc.WorkspaceID,
			AppReleaseID: releaseID,
			Content:      draft.Content,
		})
	})
}

func (s *appService) UpdateTags(ctx context.Context, rc models.Context, id models.ID, req *services.UpdateAppTagsRequest) error {
	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return err
	}
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.appRepo.ReplaceTags(txCtx, rc.TenantID, rc.WorkspaceID, id, req.TagIDs)
	})
}

func (s *appService) mustGet(ctx context.Context, rc models.Context, id models.ID) (*models.App, error) {
	app, err := s.appRepo.GetByID(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load app: %w", err)
	}
	if app == nil {
		return nil, domain.E(domain.CodeAppNotExist)
	}
	return app, nil
}

// parseVersion splits "major.minor.patch-pre" into its parts. Missing or
// non-numeric parts come back nil; everything after the first dash is the
// pre-release label.
func parseVersion(version string) (major, minor, patch *int32, pre *string) {
	main := version
	if idx := strings.IndexByte(version, '-'); idx >= 0 {
		main = version[:idx]
		label := version[idx+1:]
		pre = &label
	}

	parts := strings.Split(main, ".")
	parse := func(i int) *int32 {
		if i >= len(parts) {
			return nil
		}
		v, err := strconv.ParseInt(parts[i], 10, 32)
		if err != nil {
			return nil
		}
		n := int32(v)
		return &n
	}
	return parse(0), parse(1), parse(2), pre
}
