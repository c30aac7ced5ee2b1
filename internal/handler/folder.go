package handler

import (
	"log/slog"
	"net/http"

	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	responder     *httputil.Responder
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, responder *httputil.Responder, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		responder:     responder,
		logger:        logger,
	}
}

// GetTree returns the folder tree of one type
// GET /api/folders/{folderType}
func (h *FolderHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	folderType, ok := pathInt32(h.responder, w, r, "folderType")
	if !ok {
		return
	}

	tree, err := h.folderService.GetTree(r.Context(), rc, folderType)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, tree)
}

// Create creates a folder at the end of its sibling set
// POST /api/folders/{folderType}
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	folderType, ok := pathInt32(h.responder, w, r, "folderType")
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	id, err := h.folderService.Create(r.Context(), rc, folderType, &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, id)
}

// Rename updates a folder's name and description
// PUT /api/folders/{folderType}/{id}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.folderService.Rename(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Delete removes an empty folder
// DELETE /api/folders/{folderType}/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	if err := h.folderService.Delete(r.Context(), rc, id); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Move reparents a folder and places it among its new siblings
// PUT /api/folders/{folderType}/{id}/move
func (h *FolderHandler) Move(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.MoveFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.folderService.Move(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}
