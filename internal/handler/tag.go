package handler

import (
	"log/slog"
	"net/http"

	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService services.TagService
	responder  *httputil.Responder
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService services.TagService, responder *httputil.Responder, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		responder:  responder,
		logger:     logger,
	}
}

// List returns all tags of one type in the workspace
// GET /api/tags/{tagType}
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	tagType, ok := pathInt32(h.responder, w, r, "tagType")
	if !ok {
		return
	}

	tags, err := h.tagService.List(r.Context(), rc, tagType)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, tags)
}

// Create creates a tag
// POST /api/tags/{tagType}
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	tagType, ok := pathInt32(h.responder, w, r, "tagType")
	if !ok {
		return
	}

	var req services.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	id, err := h.tagService.Create(r.Context(), rc, tagType, &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, id)
}

// Update renames a tag
// PUT /api/tags/{tagType}/{id}
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.tagService.Update(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Delete removes a tag and detaches it from every app
// DELETE /api/tags/{tagType}/{id}
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(r.Context(), rc, id); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}
