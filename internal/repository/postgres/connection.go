package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"appforge/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names. The prefix comes from
// the environment (dev_, test_, prod_), so the SQL is interpolated before it
// reaches the driver and each environment prepares its own statements.
type TableNames struct {
	Workspaces         string
	Folders            string
	Tags               string
	Apps               string
	AppTags            string
	AppDrafts          string
	AppReleases        string
	AppReleaseContents string
	Users              string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Workspaces:         prefix + "workspaces",
		Folders:            prefix + "workspace_folders",
		Tags:               prefix + "workspace_tags",
		Apps:               prefix + "apps",
		AppTags:            prefix + "app_tags",
		AppDrafts:          prefix + "app_drafts",
		AppReleases:        prefix + "app_releases",
		AppReleaseContents: prefix + "app_release_contents",
		Users:              prefix + "users",
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies it.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in the context when present,
// falling back to the pool. Repositories automatically participate in an
// enclosing transaction this way.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
