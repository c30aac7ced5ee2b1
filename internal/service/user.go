package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
	"appforge/internal/domain/services"
)

type userService struct {
	userRepo  repositories.UserRepository
	idGen     IDGenerator
	jwtSecret []byte
	jwtTTL    time.Duration
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	idGen IDGenerator,
	jwtSecret string,
	jwtTTL time.Duration,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo:  userRepo,
		idGen:     idGen,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
		logger:    logger,
	}
}

func (s *userService) SignUp(ctx context.Context, req *services.SignUpRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(6, 128)),
	); err != nil {
		return err
	}

	tenantID, err := s.idGen.NextID()
	if err != nil {
		return err
	}
	userID, err := s.idGen.NextID()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	name := req.Email
	if idx := strings.IndexByte(req.Email, '@'); idx > 0 {
		name = req.Email[:idx]
	}

	err = s.userRepo.Insert(ctx, &models.User{
		ID:       userID,
		TenantID: tenantID,
		Name:     name,
		Email:    req.Email,
		Password: &hashed,
		Owner:    true,
	})
	if err != nil {
		return err
	}

	s.logger.Info("user signed up", "user_id", userID, "tenant_id", tenantID)
	return nil
}

func (s *userService) SignIn(ctx context.Context, req *services.SignInRequest) (*services.SignInResult, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil || user.Password == nil {
		return nil, domain.E(domain.CodeUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		return nil, domain.E(domain.CodeUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tid": user.TenantID.String(),
		"uid": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.jwtTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &services.SignInResult{Token: signed}, nil
}

func (s *userService) List(ctx context.Context, rc models.Context) ([]services.UserView, error) {
	users, err := s.userRepo.List(ctx, rc.TenantID)
	if err != nil {
		return nil, err
	}

	views := make([]services.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, services.UserView{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Description: u.Description,
		})
	}
	return views, nil
}
