package handler

import (
	"log/slog"
	"net/http"

	"appforge/internal/domain/services"
	"appforge/internal/httputil"
)

// UserHandler handles user HTTP requests
type UserHandler struct {
	userService services.UserService
	responder   *httputil.Responder
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, responder *httputil.Responder, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		responder:   responder,
		logger:      logger,
	}
}

// SignUp provisions a fresh tenant owned by the new user
// POST /api/users/sign-up
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	if err := h.userService.SignUp(r.Context(), &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.Void(w, r)
}

// SignIn verifies credentials and issues an access token
// POST /api/users/sign-in
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req services.SignInRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		h.responder.Err(w, r, err)
		return
	}

	result, err := h.userService.SignIn(r.Context(), &req)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, result)
}

// List returns the tenant's users
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := identity(h.responder, w, r)
	if !ok {
		return
	}

	users, err := h.userService.List(r.Context(), rc)
	if err != nil {
		h.responder.Err(w, r, err)
		return
	}

	h.responder.OK(w, r, users)
}
