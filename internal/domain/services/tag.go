package services

import (
	"context"

	"appforge/internal/domain/models"
)

type CreateTagRequest struct {
	Name string `json:"name"`
}

type UpdateTagRequest struct {
	Name string `json:"name"`
}

// TagView is the listing shape for tags.
type TagView struct {
	ID   models.ID `json:"id"`
	Name string    `json:"name"`
}

type TagService interface {
	List(ctx context.Context, rc models.Context, tagType int32) ([]TagView, error)
	Create(ctx context.Context, rc models.Context, tagType int32, req *CreateTagRequest) (models.ID, error)
	Update(ctx context.Context, rc models.Context, id models.ID, req *UpdateTagRequest) error

	// Delete removes the tag and detaches it from every app referencing it.
	Delete(ctx context.Context, rc models.Context, id models.ID) error
}
