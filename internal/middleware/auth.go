package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

const (
	tenantHeader = "X-Tenant-ID"
	userHeader   = "X-User-ID"
)

// Auth authenticates requests from either a Bearer token or the identity
// headers, resolves the caller's current workspace and stores the full
// request identity in the context. Routes not wrapped by it stay public.
type Auth struct {
	workspaceService services.WorkspaceService
	responder        *httputil.Responder
	jwtSecret        []byte
}

func NewAuth(workspaceService services.WorkspaceService, responder *httputil.Responder, jwtSecret string) *Auth {
	return &Auth{
		workspaceService: workspaceService,
		responder:        responder,
		jwtSecret:        []byte(jwtSecret),
	}
}

// Wrap guards a handler behind authentication.
func (a *Auth) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, userID, err := a.authenticate(r)
		if err != nil {
			a.responder.Err(w, r, err)
			return
		}

		workspaceID, err := a.workspaceService.ResolveCurrent(r.Context(), tenantID, userID)
		if err != nil {
			a.responder.Err(w, r, err)
			return
		}

		next(w, httputil.WithIdentity(r, models.Context{
			TenantID:    tenantID,
			UserID:      userID,
			WorkspaceID: workspaceID,
		}))
	}
}

func (a *Auth) authenticate(r *http.Request) (tenantID, userID models.ID, err error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return 0, 0, domain.E(domain.CodeUnauthorized)
		}
		return a.verifyToken(token)
	}

	rawTenant := r.Header.Get(tenantHeader)
	rawUser := r.Header.Get(userHeader)
	if rawTenant == "" {
		return 0, 0, domain.Ef(domain.CodeMissingHeader, "field", tenantHeader)
	}
	if rawUser == "" {
		return 0, 0, domain.Ef(domain.CodeMissingHeader, "field", userHeader)
	}

	tenantID, err = models.ParseID(rawTenant)
	if err != nil {
		return 0, 0, domain.Ef(domain.CodeIllegalParam, "field", tenantHeader)
	}
	userID, err = models.ParseID(rawUser)
	if err != nil {
		return 0, 0, domain.Ef(domain.CodeIllegalParam, "field", userHeader)
	}
	return tenantID, userID, nil
}

func (a *Auth) verifyToken(raw string) (models.ID, models.ID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, domain.E(domain.CodeUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, domain.E(domain.CodeUnauthorized)
	}

	tenantID, err := claimID(claims, "tid")
	if err != nil {
		return 0, 0, domain.E(domain.CodeUnauthorized)
	}
	userID, err := claimID(claims, "uid")
	if err != nil {
		return 0, 0, domain.E(domain.CodeUnauthorized)
	}
	return tenantID, userID, nil
}

func claimID(claims jwt.MapClaims, key string) (models.ID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return 0, fmt.Errorf("claim %s missing", key)
	}
	return models.ParseID(raw)
}
