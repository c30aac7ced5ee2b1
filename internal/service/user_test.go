package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
)

type fakeUserRepo struct {
	users map[models.ID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[models.ID]*models.User)}
}

func (r *fakeUserRepo) List(_ context.Context, tenantID models.ID) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

const testSecret = "test-secret"

func newTestUserService(repo *fakeUserRepo) services.UserService {
	return NewUserService(repo, &fakeIDSource{next: 4000}, testSecret, time.Hour, testLogger())
}

func TestUserSignUpAndSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	err := svc.SignUp(context.Background(), &services.SignUpRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	var created *models.User
	for _, u := range repo.users {
		created = u
	}
	if created == nil {
		t.Fatal("user not persisted")
	}
	if !created.Owner {
		t.Error("first user is not tenant owner")
	}
	if created.TenantID.IsZero() || created.TenantID == created.ID {
		t.Errorf("tenant id = %s, user id = %s; want distinct non-zero ids", created.TenantID, created.ID)
	}
	if created.Name != "ada" {
		t.Errorf("derived name = %q, want ada", created.Name)
	}
	if created.Password == nil || *created.Password == "hunter22" {
		t.Error("password stored in plain text")
	}

	result, err := svc.SignIn(context.Background(), &services.SignInRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["tid"] != created.TenantID.String() || claims["uid"] != created.ID.String() {
		t.Errorf("claims = %v, want tid=%s uid=%s", claims, created.TenantID, created.ID)
	}
}

func TestUserSignInWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	if err := svc.SignUp(context.Background(), &services.SignUpRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	_, err := svc.SignIn(context.Background(), &services.SignInRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	if !domain.IsCode(err, domain.CodeUnauthorized) {
		t.Errorf("SignIn() error = %v, want unauthorized code", err)
	}
}

func TestUserSignInUnknownEmail(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.SignIn(context.Background(), &services.SignInRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !domain.IsCode(err, domain.CodeUnauthorized) {
		t.Errorf("SignIn() error = %v, want unauthorized code", err)
	}
}

func TestUserSignUpValidation(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	tests := []struct {
		name string
		req  services.SignUpRequest
	}{
		{"bad email", services.SignUpRequest{Email: "not-an-email", Password: "hunter22"}},
		{"short password", services.SignUpRequest{Email: "ada@example.com", Password: "abc"}},
		{"missing password", services.SignUpRequest{Email: "ada@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.SignUp(context.Background(), &tt.req); err == nil {
				t.Error("SignUp() succeeded, want validation error")
			}
		})
	}
}

func TestUserListHidesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	if err := svc.SignUp(context.Background(), &services.SignUpRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	var tenantID models.ID
	for _, u := range repo.users {
		tenantID = u.TenantID
	}

	views, err := svc.List(context.Background(), models.Context{TenantID: tenantID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 1 || views[0].Email != "ada@example.com" {
		t.Errorf("List() = %+v", views)
	}
}
