// Command seed prepares the database schema and optionally loads a demo
// tenant for local development.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"appforge/internal/cache"
	"appforge/internal/config"
	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
	"appforge/internal/idgen"
	"appforge/internal/repository/postgres"
	"appforge/internal/service"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Ensuring database schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if err := seedDemoTenant(ctx, pool, tables, logger); err != nil {
		log.Fatalf("Failed to seed demo tenant: %v", err)
	}
	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT,
			owner BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Workspaces + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			parent_id BIGINT NOT NULL DEFAULT 0,
			folder_type INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			seq INTEGER NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Tags + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			tag_type INTEGER NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Apps + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			folder_id BIGINT NOT NULL,
			app_type INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AppTags + ` (
			app_id BIGINT NOT NULL,
			tag_id BIGINT NOT NULL,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			PRIMARY KEY (app_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AppDrafts + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			app_id BIGINT NOT NULL UNIQUE,
			content TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AppReleases + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			app_id BIGINT NOT NULL,
			version TEXT NOT NULL,
			major INTEGER,
			minor INTEGER,
			patch INTEGER,
			pre_release TEXT,
			description TEXT,
			is_latest BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AppReleaseContents + ` (
			id BIGINT PRIMARY KEY,
			tenant_id BIGINT NOT NULL,
			workspace_id BIGINT NOT NULL,
			app_release_id BIGINT NOT NULL,
			content TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_scope ON ` + tables.Folders + `(tenant_id, workspace_id, folder_type, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `tags_scope ON ` + tables.Tags + `(tenant_id, workspace_id, tag_type)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `apps_folder ON ` + tables.Apps + `(tenant_id, workspace_id, folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `app_releases_app ON ` + tables.AppReleases + `(tenant_id, workspace_id, app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `users_tenant ON ` + tables.Users + `(tenant_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse dependency order
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.AppReleaseContents,
		tables.AppReleases,
		tables.AppDrafts,
		tables.AppTags,
		tables.Apps,
		tables.Tags,
		tables.Folders,
		tables.Workspaces,
		tables.Users,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}

// seedDemoTenant creates a workspace with a folder tree and a demo app
// through the service layer, so seeded data obeys the same invariants as
// live data.
func seedDemoTenant(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, logger *slog.Logger) error {
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	workspaceRepo := postgres.NewWorkspaceRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	appRepo := postgres.NewAppRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	idGen, err := idgen.New()
	if err != nil {
		return err
	}

	folderService := service.NewFolderService(folderRepo, txManager, idGen, logger)
	registry := service.NewSubscriberRegistry(logger)
	registry.Register(service.NewFolderBootstrap(folderService, func(context.Context) string { return "Default" }))
	workspaceService := service.NewWorkspaceService(
		workspaceRepo, txManager, registry, cache.NewWorkspaceCache(), idGen,
		func(context.Context) string { return "Demo Workspace" }, logger,
	)
	appService := service.NewAppService(appRepo, folderRepo, txManager, idGen, logger)

	tenantID, err := idGen.NextID()
	if err != nil {
		return err
	}
	userID, err := idGen.NextID()
	if err != nil {
		return err
	}

	rc := models.Context{TenantID: tenantID, UserID: userID}
	rc.WorkspaceID, err = workspaceService.Create(ctx, rc, &services.WorkspaceRequest{Name: "Demo Workspace"})
	if err != nil {
		return err
	}
	log.Printf("  workspace %s created for tenant %s", rc.WorkspaceID, tenantID)

	folderID, err := folderService.Create(ctx, rc, 1, &services.CreateFolderRequest{
		ParentID: models.RootID,
		Name:     "Samples",
	})
	if err != nil {
		return err
	}

	appID, err := appService.Create(ctx, rc, &services.CreateAppRequest{
		FolderID: folderID,
		AppType:  1,
		Name:     "Hello App",
	})
	if err != nil {
		return err
	}
	if err := appService.UpdateDraft(ctx, rc, appID, &services.UpdateAppDraftRequest{
		Content: `{"pages":[]}`,
	}); err != nil {
		return err
	}

	log.Printf("  demo app %s created in folder %s", appID, folderID)
	return nil
}
