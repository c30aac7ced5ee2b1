package services

import (
	"context"

	"appforge/internal/domain/models"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult carries the issued access token.
type SignInResult struct {
	Token string `json:"token"`
}

// UserView is the listing shape for users.
type UserView struct {
	ID          models.ID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
}

type UserService interface {
	// SignUp provisions a fresh tenant owned by the new user.
	SignUp(ctx context.Context, req *SignUpRequest) error

	// SignIn verifies credentials and issues an access token.
	SignIn(ctx context.Context, req *SignInRequest) (*SignInResult, error)

	List(ctx context.Context, rc models.Context) ([]UserView, error)
}
