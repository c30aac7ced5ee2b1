package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
	"appforge/internal/domain/services"
)

type tagService struct {
	tagRepo   repositories.TagRepository
	appRepo   repositories.AppRepository
	txManager repositories.TransactionManager
	idGen     IDGenerator
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo repositories.TagRepository,
	appRepo repositories.AppRepository,
	txManager repositories.TransactionManager,
	idGen IDGenerator,
	logger *slog.Logger,
) services.TagService {
	return &tagService{
		tagRepo:   tagRepo,
		appRepo:   appRepo,
		txManager: txManager,
		idGen:     idGen,
		logger:    logger,
	}
}

func (s *tagService) List(ctx context.Context, rc models.Context, tagType int32) ([]services.TagView, error) {
	tags, err := s.tagRepo.List(ctx, rc.TenantID, rc.WorkspaceID, tagType)
	if err != nil {
		return nil, err
	}

	views := make([]services.TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, services.TagView{ID: t.ID, Name: t.Name})
	}
	return views, nil
}

func (s *tagService) Create(ctx context.Context, rc models.Context, tagType int32, req *services.CreateTagRequest) (models.ID, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
	); err != nil {
		return 0, err
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return 0, err
	}

	err = s.tagRepo.Insert(ctx, &models.Tag{
		ID:          id,
		TenantID:    rc.TenantID,
		WorkspaceID: rc.WorkspaceID,
		TagType:     tagType,
		Name:        req.Name,
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *tagService) Update(ctx context.Context, rc models.Context, id models.ID, req *services.UpdateTagRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
	); err != nil {
		return err
	}

	tag, err := s.mustGet(ctx, rc, id)
	if err != nil {
		return err
	}

	tag.Name = req.Name
	return s.tagRepo.Update(ctx, tag)
}

// Delete removes the tag and its app attachments together.
func (s *tagService) Delete(ctx context.Context, rc models.Context, id models.ID) error {
	if _, err := s.mustGet(ctx, rc, id); err != nil {
		return err
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tagRepo.Delete(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		return s.appRepo.DetachTag(txCtx, rc.TenantID, rc.WorkspaceID, id)
	})
}

func (s *tagService) mustGet(ctx context.Context, rc models.Context, id models.ID) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load tag: %w", err)
	}
	if tag == nil {
		return nil, domain.E(domain.CodeTagNotExist)
	}
	return tag, nil
}
