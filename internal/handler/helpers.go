// Package handler wires HTTP requests to services. Handlers only talk to
// services, never repositories, and always answer with the uniform envelope.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/httputil"
)

// identity returns the authenticated request context. Routes behind the auth
// middleware always have one; a miss means the route was wired wrong.
func identity(rp *httputil.Responder, w http.ResponseWriter, r *http.Request) (models.Context, bool) {
	rc, ok := httputil.Identity(r)
	if !ok {
		rp.Err(w, r, domain.E(domain.CodeUnauthorized))
		return models.Context{}, false
	}
	return rc, true
}

// pathID parses a decimal id path segment.
func pathID(rp *httputil.Responder, w http.ResponseWriter, r *http.Request, name string) (models.ID, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		rp.Err(w, r, domain.Ef(domain.CodeMissingParam, "field", name))
		return 0, false
	}
	id, err := models.ParseID(raw)
	if err != nil {
		rp.Err(w, r, domain.Ef(domain.CodeIllegalParam, "field", name))
		return 0, false
	}
	return id, true
}

// pathInt32 parses a small integer path segment such as folderType.
func pathInt32(rp *httputil.Responder, w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		rp.Err(w, r, domain.Ef(domain.CodeMissingParam, "field", name))
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		rp.Err(w, r, domain.Ef(domain.CodeIllegalParam, "field", name))
		return 0, false
	}
	return int32(v), true
}

// queryIDs parses a comma separated id list query parameter. An absent or
// empty parameter yields nil.
func queryIDs(raw string) (models.IDList, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make(models.IDList, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := models.ParseID(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
