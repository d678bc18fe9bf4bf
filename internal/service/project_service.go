package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"github.com/Pawandasila/ai-image-editor/internal/events"
	"github.com/Pawandasila/ai-image-editor/internal/model"
	"github.com/Pawandasila/ai-image-editor/internal/repository"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrProjectLimitReached = errors.New("free plan limited to 3 projects, upgrade to Pro for unlimited projects")
)

type CreateProjectInput struct {
	Title            string
	Width            int
	Height           int
	OriginalImageURL *string
	CurrentImageURL  *string
	ThumbnailURL     *string
	CanvasState      types.JSONText
	FolderID         *uuid.UUID
}

// UpdateProjectInput carries a partial update; nil fields are left unchanged.
type UpdateProjectInput struct {
	CanvasState           types.JSONText
	Width                 *int
	Height                *int
	CurrentImageURL       *string
	ThumbnailURL          *string
	ActiveTransformations *string
	BackgroundRemoved     *bool
}

type ProjectService interface {
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error)
	ListProjectsByFolder(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID) ([]model.Project, error)
	CreateProject(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (uuid.UUID, error)
	GetProject(ctx context.Context, ownerID, projectID uuid.UUID) (*model.Project, error)
	UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, input UpdateProjectInput) (uuid.UUID, error)
	MoveToFolder(ctx context.Context, ownerID, projectID uuid.UUID, folderID *uuid.UUID) error
	DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	publisher   events.EventPublisher
}

func NewProjectService(projectRepo repository.ProjectRepository, pub events.EventPublisher) ProjectService {
	return &projectService{projectRepo: projectRepo, publisher: pub}
}

func (s *projectService) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	return s.projectRepo.ListByUser(ctx, ownerID)
}

func (s *projectService) ListProjectsByFolder(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID) ([]model.Project, error) {
	return s.projectRepo.ListByFolder(ctx, ownerID, folderID)
}

func (s *projectService) CreateProject(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (uuid.UUID, error) {
	project := &model.Project{
		Title:            input.Title,
		UserID:           ownerID,
		FolderID:         input.FolderID,
		OriginalImageURL: input.OriginalImageURL,
		CurrentImageURL:  input.CurrentImageURL,
		ThumbnailURL:     input.ThumbnailURL,
		Width:            input.Width,
		Height:           input.Height,
		CanvasState:      input.CanvasState,
	}

	newID, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		if errors.Is(err, repository.ErrProjectQuota) {
			return uuid.Nil, ErrProjectLimitReached
		}
		return uuid.Nil, err
	}

	project.ID = newID
	go s.publisher.PublishProjectCreated(project)

	return newID, nil
}

func (s *projectService) GetProject(ctx context.Context, ownerID, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, ErrProjectNotFound
	}

	if project.UserID != ownerID {
		return nil, ErrAccessDenied
	}

	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, input UpdateProjectInput) (uuid.UUID, error) {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return uuid.Nil, err
	}

	patch := repository.ProjectPatch{
		CanvasState:           input.CanvasState,
		Width:                 input.Width,
		Height:                input.Height,
		CurrentImageURL:       input.CurrentImageURL,
		ThumbnailURL:          input.ThumbnailURL,
		ActiveTransformations: input.ActiveTransformations,
		BackgroundRemoved:     input.BackgroundRemoved,
	}

	if err := s.projectRepo.Update(ctx, projectID, ownerID, patch); err != nil {
		return uuid.Nil, err
	}

	return projectID, nil
}

// MoveToFolder only verifies the project's ownership. The target folder is not
// checked against the caller, matching the dashboard's current behavior; see
// DESIGN.md before tightening this.
func (s *projectService) MoveToFolder(ctx context.Context, ownerID, projectID uuid.UUID, folderID *uuid.UUID) error {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	return s.projectRepo.SetFolder(ctx, projectID, folderID)
}

func (s *projectService) DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID, ownerID); err != nil {
		return err
	}

	go s.publisher.PublishProjectDeleted(projectID, ownerID)

	return nil
}
