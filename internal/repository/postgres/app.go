package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// AppRepository is the pgx implementation of repositories.AppRepository.
type AppRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

func NewAppRepository(config *RepositoryConfig) repositories.AppRepository {
	return &AppRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *AppRepository) List(ctx context.Context, tenantID, workspaceID models.ID, query repositories.AppQuery) ([]models.App, error) {
	sql := fmt.Sprintf(`
		SELECT a.id, a.tenant_id, a.workspace_id, a.folder_id, a.app_type, a.name, a.description,
		       COALESCE(array_agg(t.tag_id) FILTER (WHERE t.tag_id IS NOT NULL), '{}') AS tag_ids
		FROM %s a
		LEFT JOIN %s t ON t.tenant_id = a.tenant_id AND t.workspace_id = a.workspace_id AND t.app_id = a.id
		WHERE a.tenant_id = $1 AND a.workspace_id = $2
	`, r.tables.Apps, r.tables.AppTags)

	args := []interface{}{tenantID, workspaceID}

	if query.FolderID != nil {
		args = append(args, *query.FolderID)
		sql += fmt.Sprintf(" AND a.folder_id = $%d", len(args))
	}
	if query.AppType != nil {
		args = append(args, *query.AppType)
		sql += fmt.Sprintf(" AND a.app_type = $%d", len(args))
	}
	if query.Name != nil && *query.Name != "" {
		args = append(args, "%"+*query.Name+"%")
		sql += fmt.Sprintf(" AND a.name ILIKE $%d", len(args))
	}
	if len(query.TagIDs) > 0 {
		args = append(args, idsToInt64(query.TagIDs))
		sql += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s f
			WHERE f.tenant_id = a.tenant_id AND f.workspace_id = a.workspace_id
			  AND f.app_id = a.id AND f.tag_id = ANY($%d)
		)`, r.tables.AppTags, len(args))
	}

	sql += " GROUP BY a.id, a.tenant_id, a.workspace_id, a.folder_id, a.app_type, a.name, a.description ORDER BY a.id"

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	var apps []models.App
	for rows.Next() {
		var a models.App
		var tagIDs []int64
		if err := rows.Scan(&a.ID, &a.TenantID, &a.WorkspaceID, &a.FolderID, &a.AppType, &a.Name, &a.Description, &tagIDs); err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		a.TagIDs = int64sToIDs(tagIDs)
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}

	return apps, nil
}

// GetByID returns (nil, nil) when no app matches.
func (r *AppRepository) GetByID(ctx context.Context, tenantID, workspaceID, id models.ID) (*models.App, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, folder_id, app_type, name, description
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Apps)

	var a models.App
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, tenantID, workspaceID, id).Scan(
		&a.ID, &a.TenantID, &a.WorkspaceID, &a.FolderID, &a.AppType, &a.Name, &a.Description,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get app: %w", err)
	}

	return &a, nil
}

func (r *AppRepository) Insert(ctx context.Context, app *models.App) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, folder_id, app_type, name, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Apps)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		app.ID, app.TenantID, app.WorkspaceID, app.FolderID, app.AppType, app.Name, app.Description,
	)
	if err != nil {
		return fmt.Errorf("insert app: %w", err)
	}
	return nil
}

func (r *AppRepository) Update(ctx context.Context, app *models.App) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2
		WHERE tenant_id = $3 AND workspace_id = $4 AND id = $5
	`, r.tables.Apps)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		app.Name, app.Description, app.TenantID, app.WorkspaceID, app.ID,
	)
	if err != nil {
		return fmt.Errorf("update app: %w", err)
	}
	return nil
}

func (r *AppRepository) Delete(ctx context.Context, tenantID, workspaceID, id models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND id = $3
	`, r.tables.Apps)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, id); err != nil {
		return fmt.Errorf("delete app: %w", err)
	}
	return nil
}

// ReplaceTags swaps the app's tag attachments for the given set.
func (r *AppRepository) ReplaceTags(ctx context.Context, tenantID, workspaceID, appID models.ID, tagIDs models.IDList) error {
	exec := GetExecutor(ctx, r.pool)

	del := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3
	`, r.tables.AppTags)
	if _, err := exec.Exec(ctx, del, tenantID, workspaceID, appID); err != nil {
		return fmt.Errorf("detach app tags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	ins := fmt.Sprintf(`
		INSERT INTO %s (tenant_id, workspace_id, app_id, tag_id)
		SELECT $1, $2, $3, unnest($4::bigint[])
	`, r.tables.AppTags)
	if _, err := exec.Exec(ctx, ins, tenantID, workspaceID, appID, idsToInt64(tagIDs)); err != nil {
		return fmt.Errorf("attach app tags: %w", err)
	}
	return nil
}

// DetachTag removes one tag from every app in the workspace.
func (r *AppRepository) DetachTag(ctx context.Context, tenantID, workspaceID, tagID models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND tag_id = $3
	`, r.tables.AppTags)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, tagID); err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	return nil
}

// GetDraft returns (nil, nil) when the app has no saved draft.
func (r *AppRepository) GetDraft(ctx context.Context, tenantID, workspaceID, appID models.ID) (*models.AppDraft, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, workspace_id, app_id, content
		FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3
	`, r.tables.AppDrafts)

	var d models.AppDraft
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, tenantID, workspaceID, appID).Scan(
		&d.ID, &d.TenantID, &d.WorkspaceID, &d.AppID, &d.Content,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get app draft: %w", err)
	}

	return &d, nil
}

func (r *AppRepository) UpsertDraft(ctx context.Context, draft *models.AppDraft) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, app_id, content)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, workspace_id, app_id)
		DO UPDATE SET content = EXCLUDED.content
	`, r.tables.AppDrafts)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		draft.ID, draft.TenantID, draft.WorkspaceID, draft.AppID, draft.Content,
	)
	if err != nil {
		return fmt.Errorf("upsert app draft: %w", err)
	}
	return nil
}

func (r *AppRepository) DeleteDraft(ctx context.Context, tenantID, workspaceID, appID models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3
	`, r.tables.AppDrafts)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, appID); err != nil {
		return fmt.Errorf("delete app draft: %w", err)
	}
	return nil
}

// ClearLatest drops the latest flag from all of the app's releases.
func (r *AppRepository) ClearLatest(ctx context.Context, tenantID, workspaceID, appID models.ID) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_latest = FALSE
		WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3 AND is_latest
	`, r.tables.AppReleases)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, appID); err != nil {
		return fmt.Errorf("clear latest release: %w", err)
	}
	return nil
}

func (r *AppRepository) InsertRelease(ctx context.Context, release *models.AppRelease) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, app_id, version, major, minor, patch, pre_release, description, is_latest)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.AppReleases)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		release.ID, release.TenantID, release.WorkspaceID, release.AppID,
		release.Version, release.Major, release.Minor, release.Patch,
		release.PreRelease, release.Description, release.IsLatest,
	)
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

func (r *AppRepository) InsertReleaseContent(ctx context.Context, content *models.AppReleaseContent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, workspace_id, app_release_id, content)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.AppReleaseContents)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		content.ID, content.TenantID, content.WorkspaceID, content.AppReleaseID, content.Content,
	)
	if err != nil {
		return fmt.Errorf("insert release content: %w", err)
	}
	return nil
}

func (r *AppRepository) DeleteReleases(ctx context.Context, tenantID, workspaceID, appID models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3
	`, r.tables.AppReleases)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, appID); err != nil {
		return fmt.Errorf("delete releases: %w", err)
	}
	return nil
}

// DeleteReleaseContents removes the content snapshots of all the app's
// releases via the release ids.
func (r *AppRepository) DeleteReleaseContents(ctx context.Context, tenantID, workspaceID, appID models.ID) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tenant_id = $1 AND workspace_id = $2
		  AND app_release_id IN (
			SELECT id FROM %s WHERE tenant_id = $1 AND workspace_id = $2 AND app_id = $3
		  )
	`, r.tables.AppReleaseContents, r.tables.AppReleases)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tenantID, workspaceID, appID); err != nil {
		return fmt.Errorf("delete release contents: %w", err)
	}
	return nil
}

func idsToInt64(ids models.IDList) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func int64sToIDs(ids []int64) models.IDList {
	out := make(models.IDList, len(ids))
	for i, id := range ids {
		out[i] = models.ID(id)
	}
	return out
}
