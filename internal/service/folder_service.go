package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Pawandasila/ai-image-editor/internal/model"
	"github.com/Pawandasila/ai-image-editor/internal/repository"
)

var (
	ErrFolderNotFound  = errors.New("folder not found")
	ErrEmptyFolderName = errors.New("folder name cannot be empty")
	ErrFolderNameTaken = errors.New("a folder with this name already exists")
)

type FolderService interface {
	ListFolders(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error)
	CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (uuid.UUID, error)
	RenameFolder(ctx context.Context, ownerID, folderID uuid.UUID, name string) (uuid.UUID, error)
	DeleteFolder(ctx context.Context, ownerID, folderID uuid.UUID) error
}

type folderService struct {
	folderRepo repository.FolderRepository
}

func NewFolderService(folderRepo repository.FolderRepository) FolderService {
	return &folderService{folderRepo: folderRepo}
}

func (s *folderService) ListFolders(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error) {
	return s.folderRepo.ListByUser(ctx, ownerID)
}

// CreateFolder does not reject duplicate names; only rename enforces
// uniqueness. Kept that way to match the dashboard's existing behavior.
func (s *folderService) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return uuid.Nil, ErrEmptyFolderName
	}

	folder := &model.Folder{
		Name:   trimmed,
		UserID: ownerID,
	}

	return s.folderRepo.Create(ctx, folder)
}

func (s *folderService) RenameFolder(ctx context.Context, ownerID, folderID uuid.UUID, name string) (uuid.UUID, error) {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		return uuid.Nil, err
	}

	if folder == nil || folder.UserID != ownerID {
		return uuid.Nil, ErrFolderNotFound
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return uuid.Nil, ErrEmptyFolderName
	}

	existing, err := s.folderRepo.FindByUserAndName(ctx, ownerID, trimmed)
	if err != nil {
		return uuid.Nil, err
	}

	if existing != nil && existing.ID != folderID {
		return uuid.Nil, ErrFolderNameTaken
	}

	if err := s.folderRepo.Rename(ctx, folderID, trimmed); err != nil {
		return uuid.Nil, err
	}

	return folderID, nil
}

// DeleteFolder detaches contained projects rather than deleting them; they end
// up back at the dashboard root.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID uuid.UUID) error {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		return err
	}

	if folder == nil || folder.UserID != ownerID {
		return ErrFolderNotFound
	}

	return s.folderRepo.DeleteAndDetachProjects(ctx, folderID)
}
