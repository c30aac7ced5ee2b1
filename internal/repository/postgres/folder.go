package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// FolderRepository is the pgx implementation of repositories.FolderRepository.
// The seq mutation statements are single UPDATEs so the service layer can run
// compress/shift/update triplets atomically under one transaction.
type FolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &FolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *FolderRepository) List(ctx context.Context, scope repositories.FolderScope) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, parent_id, folder_type, name, description, seq
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND folder_type = $3
	`, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, scope.TenantID, scope.WorkspaceID, scope.FolderType)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.TenantID, &f.WorkspaceID, &f.ParentID, &f.FolderType, &f.Name, &f.Description, &f.Seq); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	return folders, nil
}

// GetByID returns (nil, nil) when no folder matches.
func (r *FolderRepository) GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, parent_id, folder_type, name, description, seq
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Folders)

	var f models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, tenantID, workspaceID, id).Scan(
		&f.ID, &f.TenantID, &f.WorkspaceID, &f.ParentID, &f.FolderType, &f.Name, &f.Description, &f.Seq,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &f, nil
}

func (r *FolderRepository) Insert(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, parent_id, folder_type, name, description, seq)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID, folder.TenantID, folder.WorkspaceID, folder.ParentID,
		folder.FolderType, folder.Name, folder.Description, folder.Seq,
	)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2
		WHERE tenant_id = $3 AND workspace_id = $4 AND id = $5
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.Name, folder.Description, folder.TenantID, folder.WorkspaceID, folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	return nil
}

func (r *FolderRepository) Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

func (r *FolderRepository) CountChildren(ctx context.Context, scope repositories.FolderScope, parentID models.ID) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND folder_type = $3 AND parent_id = $4
	`, r.tables.Folders)

	var count int
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		scope.TenantID, scope.WorkspaceID, scope.FolderType, parentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return count, nil
}

func (r *FolderRepository) MaxSeq(ctx context.Context, scope repositories.FolderScope, parentID models.ID) (int32, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(seq), 0)
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND folder_type = $3 AND parent_id = $4
	`, r.tables.Folders)

	var max int32
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		scope.TenantID, scope.WorkspaceID, scope.FolderType, parentID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return max, nil
}

func (r *FolderRepository) ShiftSeq(ctx context.Context, scope repositories.FolderScope, parentID models.ID, fromSeq int32) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET seq = seq + 1
		WHERE tenant_id = $1 AND workspace_id = $2 AND folder_type = $3 AND parent_id = $4 AND seq >= $5
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		scope.TenantID, scope.WorkspaceID, scope.FolderType, parentID, fromSeq,
	)
	if err != nil {
		return fmt.Errorf("shift seq: %w", err)
	}
	return nil
}

func (r *FolderRepository) CompressSeq(ctx context.Context, scope repositories.FolderScope, parentID models.ID, fromSeq int32) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET seq = seq - 1
		WHERE tenant_id = $1 AND workspace_id = $2 AND folder_type = $3 AND parent_id = $4 AND seq > $5
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		scope.TenantID, scope.WorkspaceID, scope.FolderType, parentID, fromSeq,
	)
	if err != nil {
		return fmt.Errorf("compress seq: %w", err)
	}
	return nil
}

func (r *FolderRepository) ShiftRange(ctx context.Context, scope repositories.FolderScope, parentID models.ID, lo, hi, delta int32, excludeID models.ID) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET seq = seq + $1
		WHERE tenant_id = $2 AND workspace_id = $3 AND folder_type = $4 AND parent_id = $5
		  AND seq BETWEEN $6 AND $7 AND id <> $8
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		delta, scope.TenantID, scope.WorkspaceID, scope.FolderType, parentID, lo, hi, excludeID,
	)
	if err != nil {
		return fmt.Errorf("shift seq range: %w", err)
	}
	return nil
}

func (r *FolderRepository) UpdateParentAndSeq(ctx context.Context, tenantID, workspaceID, id, parentID models.ID, seq int32) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, seq = $2
		WHERE tenant_id = $3 AND workspace_id = $4 AND id = $5
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, parentID, seq, tenantID, workspaceID, id)
	if err != nil {
		return fmt.Errorf("update parent and seq: %w", err)
	}
	return nil
}
