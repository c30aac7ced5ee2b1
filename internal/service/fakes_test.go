package service

import (
	"context"
	"sort"
	"strings"

	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
)

// fakeTxManager runs the function directly; the fakes mutate shared maps so
// there is nothing to commit or roll back.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// hookedTxManager runs a callback just before the transaction body, standing
// in for a concurrent writer whose commit lands first.
type hookedTxManager struct {
	before func()
}

func (m *hookedTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if m.before != nil {
		m.before()
	}
	return fn(ctx)
}

// fakeIDSource hands out sequential ids for deterministic tests.
type fakeIDSource struct {
	next uint64
}

func (f *fakeIDSource) NextID() (models.ID, error) {
	f.next++
	return models.ID(f.next), nil
}

// fakeFolderRepo keeps folders in a map and reimplements the sequence
// statements over it.
type fakeFolderRepo struct {
	folders map[models.ID]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[models.ID]*models.Folder)}
}

func (r *fakeFolderRepo) add(f models.Folder) {
	cp := f
	r.folders[f.ID] = &cp
}

func (r *fakeFolderRepo) inScope(f *models.Folder, scope repositories.FolderScope) bool {
	return f.TenantID == scope.TenantID &&
		f.WorkspaceID == scope.WorkspaceID &&
		f.FolderType == scope.FolderType
}

func (r *fakeFolderRepo) List(_ context.Context, scope repositories.FolderScope) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if r.inScope(f, scope) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, tenantID, workspaceID, id models.ID) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.TenantID != tenantID || f.WorkspaceID != workspaceID {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) Insert(_ context.Context, folder *models.Folder) error {
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if f, ok := r.folders[folder.ID]; ok {
		f.Name = folder.Name
		f.Description = folder.Description
	}
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, _, _, id models.ID) error {
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) CountChildren(_ context.Context, scope repositories.FolderScope, parentID models.ID) (int, error) {
	n := 0
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFolderRepo) MaxSeq(_ context.Context, scope repositories.FolderScope, parentID models.ID) (int32, error) {
	var max int32
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID && f.Seq > max {
			max = f.Seq
		}
	}
	return max, nil
}

func (r *fakeFolderRepo) ShiftSeq(_ context.Context, scope repositories.FolderScope, parentID models.ID, fromSeq int32) error {
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID && f.Seq >= fromSeq {
			f.Seq++
		}
	}
	return nil
}

func (r *fakeFolderRepo) CompressSeq(_ context.Context, scope repositories.FolderScope, parentID models.ID, fromSeq int32) error {
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID && f.Seq > fromSeq {
			f.Seq--
		}
	}
	return nil
}

func (r *fakeFolderRepo) ShiftRange(_ context.Context, scope repositories.FolderScope, parentID models.ID, lo, hi, delta int32, excludeID models.ID) error {
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID && f.ID != excludeID && f.Seq >= lo && f.Seq <= hi {
			f.Seq += delta
		}
	}
	return nil
}

func (r *fakeFolderRepo) UpdateParentAndSeq(_ context.Context, _, _, id, parentID models.ID, seq int32) error {
	if f, ok := r.folders[id]; ok {
		f.ParentID = parentID
		f.Seq = seq
	}
	return nil
}

// seqsUnder returns the seq values of one sibling set in ascending order.
func (r *fakeFolderRepo) seqsUnder(scope repositories.FolderScope, parentID models.ID) []int32 {
	var seqs []int32
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID {
			seqs = append(seqs, f.Seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	return seqs
}

// namesInOrder returns sibling names ordered by seq.
func (r *fakeFolderRepo) namesInOrder(scope repositories.FolderScope, parentID models.ID) []string {
	var sibs []*models.Folder
	for _, f := range r.folders {
		if r.inScope(f, scope) && f.ParentID == parentID {
			sibs = append(sibs, f)
		}
	}
	sort.Slice(sibs, func(i, j int) bool { return sibs[i].Seq < sibs[j].Seq })
	names := make([]string, 0, len(sibs))
	for _, f := range sibs {
		names = append(names, f.Name)
	}
	return names
}

// fakeWorkspaceRepo keeps workspaces in a map.
type fakeWorkspaceRepo struct {
	workspaces map[models.ID]*models.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[models.ID]*models.Workspace)}
}

func (r *fakeWorkspaceRepo) List(_ context.Context, tenantID models.ID) ([]models.Workspace, error) {
	var out []models.Workspace
	for _, w := range r.workspaces {
		if w.TenantID == tenantID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, tenantID, id models.ID) (*models.Workspace, error) {
	w, ok := r.workspaces[id]
	if !ok || w.TenantID != tenantID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkspaceRepo) Insert(_ context.Context, workspace *models.Workspace) error {
	cp := *workspace
	r.workspaces[workspace.ID] = &cp
	return nil
}

func (r *fakeWorkspaceRepo) Update(_ context.Context, workspace *models.Workspace) error {
	if w, ok := r.workspaces[workspace.ID]; ok {
		w.Name = workspace.Name
		w.Description = workspace.Description
	}
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, _, id models.ID) error {
	delete(r.workspaces, id)
	return nil
}

// fakeAppRepo keeps apps, drafts, releases and tag rows in maps.
type fakeAppRepo struct {
	apps     map[models.ID]*models.App
	drafts   map[models.ID]*models.AppDraft // keyed by app id
	releases map[models.ID]*models.AppRelease
	contents map[models.ID]*models.AppReleaseContent
	tags     map[models.ID]models.IDList // app id -> tag ids
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{
		apps:     make(map[models.ID]*models.App),
		drafts:   make(map[models.ID]*models.AppDraft),
		releases: make(map[models.ID]*models.AppRelease),
		contents: make(map[models.ID]*models.AppReleaseContent),
		tags:     make(map[models.ID]models.IDList),
	}
}

func (r *fakeAppRepo) List(_ context.Context, tenantID, workspaceID models.ID, query repositories.AppQuery) ([]models.App, error) {
	var out []models.App
	for _, a := range r.apps {
		if a.TenantID != tenantID || a.WorkspaceID != workspaceID {
			continue
		}
		if query.FolderID != nil && a.FolderID != *query.FolderID {
			continue
		}
		if query.AppType != nil && a.AppType != *query.AppType {
			continue
		}
		if query.Name != nil && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(*query.Name)) {
			continue
		}
		if len(query.TagIDs) > 0 {
			matched := false
			for _, want := range query.TagIDs {
				if r.tags[a.ID].Contains(want) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		cp := *a
		cp.TagIDs = r.tags[a.ID]
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, tenantID, workspaceID, id models.ID) (*models.App, error) {
	a, ok := r.apps[id]
	if !ok || a.TenantID != tenantID || a.WorkspaceID != workspaceID {
		return nil, nil
	}
	cp := *a
	cp.TagIDs = r.tags[id]
	return &cp, nil
}

func (r *fakeAppRepo) Insert(_ context.Context, app *models.App) error {
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeAppRepo) Update(_ context.Context, app *models.App) error {
	if a, ok := r.apps[app.ID]; ok {
		a.Name = app.Name
		a.Description = app.Description
	}
	return nil
}

func (r *fakeAppRepo) Delete(_ context.Context, _, _, id models.ID) error {
	delete(r.apps, id)
	return nil
}

func (r *fakeAppRepo) ReplaceTags(_ context.Context, _, _, appID models.ID, tagIDs models.IDList) error {
	if len(tagIDs) == 0 {
		delete(r.tags, appID)
		return nil
	}
	r.tags[appID] = append(models.IDList(nil), tagIDs...)
	return nil
}

func (r *fakeAppRepo) DetachTag(_ context.Context, _, _, tagID models.ID) error {
	for appID, ids := range r.tags {
		kept := ids[:0]
		for _, id := range ids {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		r.tags[appID] = kept
	}
	return nil
}

func (r *fakeAppRepo) GetDraft(_ context.Context, tenantID, workspaceID, appID models.ID) (*models.AppDraft, error) {
	d, ok := r.drafts[appID]
	if !ok || d.TenantID != tenantID || d.WorkspaceID != workspaceID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeAppRepo) UpsertDraft(_ context.Context, draft *models.AppDraft) error {
	if existing, ok := r.drafts[draft.AppID]; ok {
		existing.Content = draft.Content
		return nil
	}
	cp := *draft
	r.drafts[draft.AppID] = &cp
	return nil
}

func (r *fakeAppRepo) DeleteDraft(_ context.Context, _, _, appID models.ID) error {
	delete(r.drafts, appID)
	return nil
}

func (r *fakeAppRepo) ClearLatest(_ context.Context, _, _, appID models.ID) error {
	for _, rel := range r.releases {
		if rel.AppID == appID {
			rel.IsLatest = false
		}
	}
	return nil
}

func (r *fakeAppRepo) InsertRelease(_ context.Context, release *models.AppRelease) error {
	cp := *release
	r.releases[release.ID] = &cp
	return nil
}

func (r *fakeAppRepo) InsertReleaseContent(_ context.Context, content *models.AppReleaseContent) error {
	cp := *content
	r.contents[content.ID] = &cp
	return nil
}

func (r *fakeAppRepo) DeleteReleases(_ context.Context, _, _, appID models.ID) error {
	for id, rel := range r.releases {
		if rel.AppID == appID {
			delete(r.releases, id)
		}
	}
	return nil
}

func (r *fakeAppRepo) DeleteReleaseContents(_ context.Context, _, _, appID models.ID) error {
	for id, c := range r.contents {
		if rel, ok := r.releases[c.AppReleaseID]; ok && rel.AppID == appID {
			delete(r.contents, id)
		}
	}
	return nil
}

// fakeTagRepo keeps tags in a map.
type fakeTagRepo struct {
	tags map[models.ID]*models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[models.ID]*models.Tag)}
}

func (r *fakeTagRepo) List(_ context.Context, tenantID, workspaceID models.ID, tagType int32) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range r.tags {
		if tag.TenantID == tenantID && tag.WorkspaceID == workspaceID && tag.TagType == tagType {
			out = append(out, *tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, tenantID, workspaceID, id models.ID) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok || tag.TenantID != tenantID || tag.WorkspaceID != workspaceID {
		return nil, nil
	}
	cp := *tag
	return &cp, nil
}

func (r *fakeTagRepo) Insert(_ context.Context, tag *models.Tag) error {
	cp := *tag
	r.tags[tag.ID] = &cp
	return nil
}

func (r *fakeTagRepo) Update(_ context.Context, tag *models.Tag) error {
	if existing, ok := r.tags[tag.ID]; ok {
		existing.Name = tag.Name
	}
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, _, _, id models.ID) error {
	delete(r.tags, id)
	return nil
}
