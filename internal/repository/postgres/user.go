package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// UserRepository is the pgx implementation of repositories.UserRepository.
type UserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &UserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *UserRepository) List(ctx context.Context, tenantID models.ID) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, email, password, owner, description
		FROM %s
		WHERE tenant_id = $1
		ORDER BY id
	`, r.tables.Users)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Password, &u.Owner, &u.Description); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// GetByEmail returns (nil, nil) when no user has the email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, email, password, owner, description
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	var u models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, email).Scan(
		&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Password, &u.Owner, &u.Description,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, name, email, password, owner, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Users)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		user.ID, user.TenantID, user.Name, user.Email, user.Password, user.Owner, user.Description,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return domain.Ef(domain.CodeIllegalParam, "field", "email")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
