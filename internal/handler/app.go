package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

// AppHandler handles app HTTP requests
type AppHandler struct {
	appService services.AppService
	responder  *httputil.Responder
	logger     *slog.Logger
}

// NewAppHandler creates a new app handler
func NewAppHandler(appService services.AppService, responder *httputil.Responder, logger *slog.Logger) *AppHandler {
	return &AppHandler{
		appService: appService,
		responder:  responder,
		logger:     logger,
	}
}

// List returns apps filtered by folder, type, name and tags
// GET /api/apps?folderId=&appType=&name=&tagIds=
func (h *AppHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}

	query, err := parseAppListQuery(r)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	apps, err := h.appService.List(r.Context(), rc, query)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, apps)
}

// Create creates an app inside an existing folder
// POST /api/apps
func (h *AppHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}

	var req services.CreateAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	id, err := h.appService.Create(r.Context(), rc, &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, id)
}

// Update renames an app
// PUT /api/apps/{id}
func (h *AppHandler) Update(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.appService.Update(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Delete removes an app with all of its versions
// DELETE /api/apps/{id}
func (h *AppHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	if err := h.appService.Delete(r.Context(), rc, id); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// GetDraft returns the app's working copy
// GET /api/apps/{id}/draft
func (h *AppHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	content, err := h.appService.GetDraft(r.Context(), rc, id)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, content)
}

// UpdateDraft overwrites the app's working copy
// PUT /api/apps/{id}/draft
func (h *AppHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateAppDraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.appService.UpdateDraft(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// Clone copies an app and its draft under a new name
// POST /api/apps/{id}/clone
func (h *AppHandler) Clone(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.CloneAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	newID, err := h.appService.Clone(r.Context(), rc, id, &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, newID)
}

// Release snapshots the draft under a version
// POST /api/apps/{id}/release
func (h *AppHandler) Release(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.ReleaseAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.appService.Release(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// UpdateTags replaces the app's tag set
// PUT /api/apps/{id}/tags
func (h *AppHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}
	id, ok := pathID(h.responder, w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateAppTagsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.appService.UpdateTags(r.Context(), rc, id, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

func parseAppListQuery(r *http.Request) (services.AppListQuery, error) {
	q := r.URL.Query()
	var query services.AppListQuery

	if raw := q.Get("folderId"); raw != "" {
		id, err := models.ParseID(raw)
		if err != nil {
			return query, domain.Ef(domain.CodeIllegalParam, "field", "folderId")
		}
		query.FolderID = &id
	}
	if raw := q.Get("appType"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return query, domain.Ef(domain.CodeIllegalParam, "field", "appType")
		}
		t := int32(v)
		query.AppType = &t
	}
	if raw := q.Get("name"); raw != "" {
		query.Name = &raw
	}
	tagIDs, err := queryIDs(q.Get("tagIds"))
	if err != nil {
		return query, domain.Ef(domain.CodeIllegalParam, "field", "tagIds")
	}
	query.TagIDs = tagIDs

	return query, nil
}
