package handler

import (
	"log/slog"
	"net/http"

	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
	responder        *httputil.Responder
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService services.WorkspaceService, responder *httputil.Responder, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		responder:        responder,
		logger:           logger,
	}
}

// List returns the tenant's workspaces with the caller's current one flagged
// GET /api/workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}

	views, err := h.workspaceService.List(r.Context(), rc)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, views)
}

// Create creates a workspace and bootstraps its defaults
// POST /api/workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}

	var req services.WorkspaceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	id, err := h.workspaceService.Create(r.Context(), rc, &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, id)
}

// Update renames a workspace
// PUT /api/workspaces/{id}
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.WorkspaceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.workspaceService.Update(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Delete removes a workspace other than the caller's current one
// DELETE /api/workspaces/{id}
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), rc, id); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Switch makes the workspace the caller's current one
// PUT /api/workspaces/{id}/current
func (h *WorkspaceHandler) Switch(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.Switch(r.Context(), rc, id); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}
