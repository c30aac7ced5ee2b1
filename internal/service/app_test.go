package service

import (
	"context"
	"testing"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/services"
)

func newTestAppService(appRepo *fakeAppRepo, folderRepo *fakeFolderRepo) services.AppService {
	return NewAppService(appRepo, folderRepo, fakeTxManager{}, &fakeIDSource{next: 2000}, testLogger())
}

func seedApp(repo *fakeAppRepo, id models.ID) {
	repo.apps[id] = &models.App{
		ID: id, TenantID: 10, WorkspaceID: 20, FolderID: 100, AppType: 1, Name: "app",
	}
}

func TestParseVersion(t *testing.T) {
	i32 := func(v int32) *int32 { return &v }
	str := func(s string) *string { return &s }

	tests := []struct {
		version   string
		wantMajor *int32
		wantMinor *int32
		wantPatch *int32
		wantPre   *string
	}{
		{"1.2.3", i32(1), i32(2), i32(3), nil},
		{"1.2.3-beta", i32(1), i32(2), i32(3), str("beta")},
		{"2.0", i32(2), i32(0), nil, nil},
		{"7", i32(7), nil, nil, nil},
		{"v1.2.3", nil, i32(2), i32(3), nil},
		{"1.x.3", i32(1), nil, i32(3), nil},
		{"1.2.3-rc-1", i32(1), i32(2), i32(3), str("rc-1")},
		{"nightly", nil, nil, nil, nil},
	}

	eqI32 := func(a, b *int32) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	}
	eqStr := func(a, b *string) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			major, minor, patch, pre := parseVersion(tt.version)
			if !eqI32(major, tt.wantMajor) || !eqI32(minor, tt.wantMinor) || !eqI32(patch, tt.wantPatch) {
				t.Errorf("parseVersion(%q) parts = %v/%v/%v", tt.version, major, minor, patch)
			}
			if !eqStr(pre, tt.wantPre) {
				t.Errorf("parseVersion(%q) pre = %v, want %v", tt.version, pre, tt.wantPre)
			}
		})
	}
}

func TestAppCreateRequiresFolder(t *testing.T) {
	svc := newTestAppService(newFakeAppRepo(), newFakeFolderRepo())

	_, err := svc.Create(context.Background(), testContext(), &services.CreateAppRequest{
		FolderID: 999,
		AppType:  1,
		Name:     "orphan",
	})
	if !domain.IsCode(err, domain.CodeAppFolderNotExist) {
		t.Errorf("Create() error = %v, want app-folder-not-exist code", err)
	}
}

func TestAppCreateAndList(t *testing.T) {
	appRepo := newFakeAppRepo()
	folderRepo := newFakeFolderRepo()
	seedSiblings(folderRepo, models.RootID, "apps")
	svc := newTestAppService(appRepo, folderRepo)

	rc := testContext()
	id, err := svc.Create(context.Background(), rc, &services.CreateAppRequest{
		FolderID: 100,
		AppType:  1,
		Name:     "dashboard",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	views, err := svc.List(context.Background(), rc, services.AppListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 1 || views[0].ID != id || views[0].Name != "dashboard" {
		t.Errorf("List() = %+v", views)
	}
}

func TestAppListFiltersByTag(t *testing.T) {
	appRepo := newFakeAppRepo()
	folderRepo := newFakeFolderRepo()
	svc := newTestAppService(appRepo, folderRepo)
	rc := testContext()

	seedApp(appRepo, 1)
	seedApp(appRepo, 2)
	appRepo.tags[1] = models.IDList{50}

	views, err := svc.List(context.Background(), rc, services.AppListQuery{TagIDs: models.IDList{50}})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 1 || views[0].ID != 1 {
		t.Errorf("List() with tag filter = %+v, want only app 1", views)
	}
}

func TestAppDraftLifecycle(t *testing.T) {
	appRepo := newFakeAppRepo()
	svc := newTestAppService(appRepo, newFakeFolderRepo())
	rc := testContext()
	seedApp(appRepo, 1)

	// No draft yet: empty content, no error.
	content, err := svc.GetDraft(context.Background(), rc, 1)
	if err != nil {
		t.Fatalf("GetDraft() error = %v", err)
	}
	if content != "" {
		t.Errorf("GetDraft() before save = %q, want empty", content)
	}

	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "v1"}); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "v2"}); err != nil {
		t.Fatalf("UpdateDraft() second save error = %v", err)
	}

	content, err = svc.GetDraft(context.Background(), rc, 1)
	if err != nil {
		t.Fatalf("GetDraft() error = %v", err)
	}
	if content != "v2" {
		t.Errorf("GetDraft() = %q, want v2", content)
	}
	if len(appRepo.drafts) != 1 {
		t.Errorf("draft rows = %d, want 1 after upsert", len(appRepo.drafts))
	}
}

func TestAppGetDraftUnknownApp(t *testing.T) {
	svc := newTestAppService(newFakeAppRepo(), newFakeFolderRepo())

	_, err := svc.GetDraft(context.Background(), testContext(), 404)
	if !domain.IsCode(err, domain.CodeAppNotExist) {
		t.Errorf("GetDraft() error = %v, want app-not-exist code", err)
	}
}

func TestAppReleaseRequiresDraft(t *testing.T) {
	appRepo := newFakeAppRepo()
	svc := newTestAppService(appRepo, newFakeFolderRepo())
	seedApp(appRepo, 1)

	err := svc.Release(context.Background(), testContext(), 1, &services.ReleaseAppRequest{Version: "1.0.0"})
	if !domain.IsCode(err, domain.CodeAppDraftNotExist) {
		t.Errorf("Release() error = %v, want app-draft-not-exist code", err)
	}
}

func TestAppReleaseSnapshotsDraft(t *testing.T) {
	appRepo := newFakeAppRepo()
	svc := newTestAppService(appRepo, newFakeFolderRepo())
	rc := testContext()
	seedApp(appRepo, 1)

	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "first"}); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	if err := svc.Release(context.Background(), rc, 1, &services.ReleaseAppRequest{Version: "1.0.0"}); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "second"}); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	if err := svc.Release(context.Background(), rc, 1, &services.ReleaseAppRequest{Version: "1.1.0-beta"}); err != nil {
		t.Fatalf("second Release() error = %v", err)
	}

	if len(appRepo.releases) != 2 {
		t.Fatalf("release count = %d, want 2", len(appRepo.releases))
	}

	var latest *models.AppRelease
	for _, rel := range appRepo.releases {
		if rel.IsLatest {
			if latest != nil {
				t.Fatal("more than one release flagged latest")
			}
			latest = rel
		}
	}
	if latest == nil {
		t.Fatal("no release flagged latest")
	}
	if latest.Version != "1.1.0-beta" {
		t.Errorf("latest version = %q, want 1.1.0-beta", latest.Version)
	}
	if latest.PreRelease == nil || *latest.PreRelease != "beta" {
		t.Errorf("latest pre-release = %v, want beta", latest.PreRelease)
	}

	// The snapshot keeps the draft content at release time.
	var snapshot string
	for _, c := range appRepo.contents {
		if c.AppReleaseID == latest.ID {
			snapshot = c.Content
		}
	}
	if snapshot != "second" {
		t.Errorf("latest snapshot = %q, want second", snapshot)
	}
}

func TestAppCloneCopiesDraft(t *testing.T) {
	appRepo := newFakeAppRepo()
	folderRepo := newFakeFolderRepo()
	seedSiblings(folderRepo, models.RootID, "apps")
	svc := newTestAppService(appRepo, folderRepo)
	rc := testContext()

	seedApp(appRepo, 1)
	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "body"}); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}

	cloneID, err := svc.Clone(context.Background(), rc, 1, &services.CloneAppRequest{Name: "copy"})
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if cloneID == 1 {
		t.Fatal("clone reused the source id")
	}

	clone := appRepo.apps[cloneID]
	if clone == nil || clone.Name != "copy" || clone.FolderID != 100 {
		t.Errorf("clone = %+v", clone)
	}

	content, err := svc.GetDraft(context.Background(), rc, cloneID)
	if err != nil {
		t.Fatalf("GetDraft() on clone error = %v", err)
	}
	if content != "body" {
		t.Errorf("clone draft = %q, want body", content)
	}
}

func TestAppDeleteCascades(t *testing.T) {
	appRepo := newFakeAppRepo()
	svc := newTestAppService(appRepo, newFakeFolderRepo())
	rc := testContext()

	seedApp(appRepo, 1)
	if err := svc.UpdateDraft(context.Background(), rc, 1, &services.UpdateAppDraftRequest{Content: "x"}); err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	if err := svc.Release(context.Background(), rc, 1, &services.ReleaseAppRequest{Version: "1.0.0"}); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := svc.UpdateTags(context.Background(), rc, 1, &services.UpdateAppTagsRequest{TagIDs: models.IDList{50, 51}}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}

	if err := svc.Delete(context.Background(), rc, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(appRepo.apps) != 0 || len(appRepo.drafts) != 0 || len(appRepo.releases) != 0 || len(appRepo.contents) != 0 {
		t.Errorf("residue after delete: apps=%d drafts=%d releases=%d contents=%d",
			len(appRepo.apps), len(appRepo.drafts), len(appRepo.releases), len(appRepo.contents))
	}
	if len(appRepo.tags[1]) != 0 {
		t.Errorf("tag rows remain after delete: %v", appRepo.tags[1])
	}
}

func TestAppUpdateTagsReplacesSet(t *testing.T) {
	appRepo := newFakeAppRepo()
	svc := newTestAppService(appRepo, newFakeFolderRepo())
	rc := testContext()
	seedApp(appRepo, 1)

	if err := svc.UpdateTags(context.Background(), rc, 1, &services.UpdateAppTagsRequest{TagIDs: models.IDList{50, 51}}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}
	if err := svc.UpdateTags(context.Background(), rc, 1, &services.UpdateAppTagsRequest{TagIDs: models.IDList{52}}); err != nil {
		t.Fatalf("UpdateTags() second call error = %v", err)
	}

	got := appRepo.tags[1]
	if len(got) != 1 || got[0] != 52 {
		t.Errorf("tags after replace = %v, want [52]", got)
	}
}
