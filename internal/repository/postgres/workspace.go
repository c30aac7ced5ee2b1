package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// WorkspaceRepository is the pgx implementation of
// repositories.WorkspaceRepository.
type WorkspaceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

func NewWorkspaceRepository(config *RepositoryConfig) repositories.WorkspaceRepository {
	return &WorkspaceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *WorkspaceRepository) List(ctx context.Context, tenantID models.ID) ([]models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, description
		FROM %s
		WHERE tenant_id = $1
		ORDER BY id
	`, r.tables.Workspaces)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Name, &w.Description); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	return workspaces, nil
}

// GetByID returns (nil, nil) when no workspace matches.
func (r *WorkspaceRepository) GetByID(ctx context.Context, tenantID, id models.ID) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, description
		FROM %s
		WHERE tenant_id = $1 AND id = $2
	`, r.tables.Workspaces)

	var w models.Workspace
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, tenantID, id).Scan(&w.ID, &w.TenantID, &w.Name, &w.Description)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	return &w, nil
}

func (r *WorkspaceRepository) Insert(ctx context.Context, workspace *models.Workspace) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, name, description)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Workspaces)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		workspace.ID, workspace.TenantID, workspace.Name, workspace.Description,
	)
	if err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, workspace *models.Workspace) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2
		WHERE tenant_id = $3 AND id = $4
	`, r.tables.Workspaces)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		workspace.Name, workspace.Description, workspace.TenantID, workspace.ID,
	)
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, tenantID, id models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND id = $2
	`, r.tables.Workspaces)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
