package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"appforge/internal/domain"
	"appforge/internal/domain/models"
	"appforge/internal/domain/repositories"
	"appforge/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	idGen      IDGenerator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	idGen IDGenerator,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		txManager:  txManager,
		idGen:      idGen,
		logger:     logger,
	}
}

func scopeOf(rc models.Context, folderType int32) repositories.FolderScope {
	return repositories.FolderScope{
		TenantID:    rc.TenantID,
		WorkspaceID: rc.WorkspaceID,
		FolderType:  folderType,
	}
}

// GetTree assembles the folder forest from the flat scope listing. Nodes are
// indexed by id with an adjacency list per parent; assembly walks down from
// the root sentinel with a visited set, so a corrupt cyclic parent chain is
// dropped instead of recursing forever.
func (s *folderService) GetTree(ctx context.Context, rc models.Context, folderType int32) ([]*models.FolderTreeNode, error) {
	folders, err := s.folderRepo.List(ctx, scopeOf(rc, folderType))
	if err != nil {
		return nil, err
	}

	children := make(map[models.ID][]*models.FolderTreeNode, len(folders))
	for _, f := range folders {
		children[f.ParentID] = append(children[f.ParentID], &models.FolderTreeNode{
			ID:          f.ID,
			ParentID:    f.ParentID,
			Name:        f.Name,
			Description: f.Description,
			Seq:         f.Seq,
			Children:    []*models.FolderTreeNode{},
		})
	}

	visited := make(map[models.ID]bool, len(folders))
	return assemble(models.RootID, children, visited), nil
}

func assemble(parentID models.ID, children map[models.ID][]*models.FolderTreeNode, visited map[models.ID]bool) []*models.FolderTreeNode {
	nodes := children[parentID]
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Seq != nodes[j].Seq {
			return nodes[i].Seq < nodes[j].Seq
		}
		return nodes[i].Name < nodes[j].Name
	})

	out := make([]*models.FolderTreeNode, 0, len(nodes))
	for _, node := range nodes {
		if visited[node.ID] {
			continue
		}
		visited[node.ID] = true
		node.Children = assemble(node.ID, children, visited)
		out = append(out, node)
	}
	return out
}

// Create appends the folder at the end of its sibling set: seq = max + 1,
// computed and inserted under one transaction.
func (s *folderService) Create(ctx context.Context, rc models.Context, folderType int32, req *services.CreateFolderRequest) (models.ID, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return 0, err
	}

	scope := scopeOf(rc, folderType)
	if err := s.ensureParentExists(ctx, rc, req.ParentID); err != nil {
		return 0, err
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return 0, err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		maxSeq, err := s.folderRepo.MaxSeq(txCtx, scope, req.ParentID)
		if err != nil {
			return err
		}

		return s.folderRepo.Insert(txCtx, &models.Folder{
			ID:          id,
			TenantID:    rc.TenantID,
			WorkspaceID: rc.WorkspaceID,
			ParentID:    req.ParentID,
			FolderType:  folderType,
			Name:        req.Name,
			Description: req.Description,
			Seq:         maxSeq + 1,
		})
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("folder created",
		"id", id,
		"parent_id", req.ParentID,
		"folder_type", folderType,
		"workspace_id", rc.WorkspaceID,
	)
	return id, nil
}

// Rename leaves parent and seq untouched.
func (s *folderService) Rename(ctx context.Context, rc models.Context, id models.ID, req *services.UpdateFolderRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		return err
	}

	folder, err := s.mustGet(ctx, rc, id)
	if err != nil {
		return err
	}

	folder.Name = req.Name
	folder.Description = req.Description
	return s.folderRepo.Update(ctx, folder)
}

// Delete refuses non-empty folders, then removes the row and compresses the
// vacated sibling scope. The child count reads inside the same transaction
// as the delete, so a concurrent create cannot slip a child under a parent
// that is about to disappear.
func (s *folderService) Delete(ctx context.Context, rc models.Context, id models.ID) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.mustGet(txCtx, rc, id)
		if err != nil {
			return err
		}

		scope := scopeOf(rc, folder.FolderType)
		count, err := s.folderRepo.CountChildren(txCtx, scope, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.E(domain.CodeFolderNotEmpty)
		}

		if err := s.folderRepo.Delete(txCtx, rc.TenantID, rc.WorkspaceID, id); err != nil {
			return err
		}
		return s.folderRepo.CompressSeq(txCtx, scope, folder.ParentID, folder.Seq)
	})
}

// Move reparents the folder and renumbers the affected sibling sets. Cross
// parent moves compress the old scope, shift the new one open and write the
// new position. A move within the same parent cannot use that sequence (the
// compress and shift would each miscount the moved folder itself), so it is
// handled as a single bounded shift over the rotated range.
func (s *folderService) Move(ctx context.Context, rc models.Context, id models.ID, req *services.MoveFolderRequest) error {
	if id == req.ParentID {
		return domain.E(domain.CodeFolderMoveToSelf)
	}

	// The existence checks, the clamp and the renumbering all read and write
	// under one transaction so the moved row and its sibling counts cannot
	// drift between statements.
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.mustGet(txCtx, rc, id)
		if err != nil {
			return err
		}
		if err := s.ensureParentExists(txCtx, rc, req.ParentID); err != nil {
			return err
		}

		scope := scopeOf(rc, folder.FolderType)

		siblings, err := s.folderRepo.CountChildren(txCtx, scope, req.ParentID)
		if err != nil {
			return err
		}

		// Clamp the target position to a dense slot.
		limit := int32(siblings) + 1
		if folder.ParentID == req.ParentID {
			limit = int32(siblings)
		}
		newSeq := req.Seq
		if newSeq < 1 {
			newSeq = 1
		}
		if newSeq > limit {
			newSeq = limit
		}

		if folder.ParentID == req.ParentID {
			return s.reorderWithinParent(txCtx, scope, folder, newSeq)
		}

		if err := s.folderRepo.CompressSeq(txCtx, scope, folder.ParentID, folder.Seq); err != nil {
			return err
		}
		if err := s.folderRepo.ShiftSeq(txCtx, scope, req.ParentID, newSeq); err != nil {
			return err
		}
		return s.folderRepo.UpdateParentAndSeq(txCtx, rc.TenantID, rc.WorkspaceID, id, req.ParentID, newSeq)
	})
}

// reorderWithinParent rotates the range between the old and new position by
// one, excluding the moved folder, then drops the folder into the freed slot.
// The caller already holds the transaction.
func (s *folderService) reorderWithinParent(txCtx context.Context, scope repositories.FolderScope, folder *models.Folder, newSeq int32) error {
	if newSeq == folder.Seq {
		return nil
	}

	var err error
	if newSeq < folder.Seq {
		// Moving up: everything in [newSeq, oldSeq) slides down one slot.
		err = s.folderRepo.ShiftRange(txCtx, scope, folder.ParentID, newSeq, folder.Seq-1, 1, folder.ID)
	} else {
		// Moving down: everything in (oldSeq, newSeq] slides up one slot.
		err = s.folderRepo.ShiftRange(txCtx, scope, folder.ParentID, folder.Seq+1, newSeq, -1, folder.ID)
	}
	if err != nil {
		return err
	}
	return s.folderRepo.UpdateParentAndSeq(txCtx, folder.TenantID, folder.WorkspaceID, folder.ID, folder.ParentID, newSeq)
}

// CreateDefault bootstraps the first folder of a fresh workspace.
func (s *folderService) CreateDefault(ctx context.Context, tenantID, workspaceID models.ID, folderType int32, name string) error {
	id, err := s.idGen.NextID()
	if err != nil {
		return err
	}

	return s.folderRepo.Insert(ctx, &models.Folder{
		ID:          id,
		TenantID:    tenantID,
		WorkspaceID: workspaceID,
		ParentID:    models.RootID,
		FolderType:  folderType,
		Name:        name,
		Seq:         1,
	})
}

func (s *folderService) mustGet(ctx context.Context, rc models.Context, id models.ID) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, rc.TenantID, rc.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load folder: %w", err)
	}
	if folder == nil {
		return nil, domain.E(domain.CodeFolderNotExist)
	}
	return folder, nil
}

func (s *folderService) ensureParentExists(ctx context.Context, rc models.Context, parentID models.ID) error {
	if parentID.IsZero() {
		return nil
	}
	parent, err := s.folderRepo.GetByID(ctx, rc.TenantID, rc.WorkspaceID, parentID)
	if err != nil {
		return fmt.Errorf("load parent folder: %w", err)
	}
	if parent == nil {
		return domain.E(domain.CodeFolderParentNotExist)
	}
	return nil
}
