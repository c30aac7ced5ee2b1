package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// TagRepository is the pgx implementation of repositories.TagRepository.
type TagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &TagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *TagRepository) List(ctx context.Context, tenantID, workspaceID models.ID, tagType int32) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, tag_type, name
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND tag_type = $3
		ORDER BY id
	`, r.tables.Tags)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID, workspaceID, tagType)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.TenantID, &t.WorkspaceID, &t.TagType, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// GetByID returns (nil, nil) when no tag matches.
func (r *TagRepository) GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, tag_type, name
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Tags)

	var t models.Tag
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, tenantID, workspaceID, id).Scan(
		&t.ID, &t.TenantID, &t.WorkspaceID, &t.TagType, &t.Name,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) Insert(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, tag_type, name)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Tags)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		tag.ID, tag.TenantID, tag.WorkspaceID, tag.TagType, tag.Name,
	)
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE tenant_id = $2 AND workspace_id = $3 AND id = $4
	`, r.tables.Tags)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		tag.Name, tag.TenantID, tag.WorkspaceID, tag.ID,
	)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Tags)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
