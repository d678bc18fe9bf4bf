package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Pawandasila/ai-image-editor/internal/model"
	"github.com/Pawandasila/ai-image-editor/internal/repository"
	"github.com/Pawandasila/ai-image-editor/internal/service"
)

type fakeProjectRepo struct {
	projects  map[uuid.UUID]*model.Project
	createErr error
}

func newFakeProjectRepo(projects ...*model.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: map[uuid.UUID]*model.Project{}}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, project *model.Project) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	project.ID = uuid.New()
	r.projects[project.ID] = project
	return project.ID, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByFolder(_ context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range r.projects {
		if p.UserID != userID {
			continue
		}
		if folderID == nil && p.FolderID == nil {
			out = append(out, *p)
		}
		if folderID != nil && p.FolderID != nil && *p.FolderID == *folderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, id uuid.UUID, _ uuid.UUID, patch repository.ProjectPatch) error {
	if patch.Width != nil {
		r.projects[id].Width = *patch.Width
	}
	if patch.Height != nil {
		r.projects[id].Height = *patch.Height
	}
	return nil
}

func (r *fakeProjectRepo) SetFolder(_ context.Context, id uuid.UUID, folderID *uuid.UUID) error {
	r.projects[id].FolderID = folderID
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishProjectCreated(*model.Project) error       { return nil }
func (nopPublisher) PublishProjectDeleted(uuid.UUID, uuid.UUID) error { return nil }
func (nopPublisher) PublishPlanUpdated(uuid.UUID, string) error       { return nil }

func TestProjectService_CreateProject_QuotaMapped(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.createErr = repository.ErrProjectQuota
	s := service.NewProjectService(repo, nopPublisher{})

	_, err := s.CreateProject(context.Background(), uuid.New(), service.CreateProjectInput{Title: "T", Width: 1, Height: 1})
	require.ErrorIs(t, err, service.ErrProjectLimitReached)
}

func TestProjectService_GetProject_NotFound(t *testing.T) {
	s := service.NewProjectService(newFakeProjectRepo(), nopPublisher{})

	_, err := s.GetProject(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, service.ErrProjectNotFound)
}

func TestProjectService_GetProject_WrongOwner(t *testing.T) {
	p := &model.Project{ID: uuid.New(), UserID: uuid.New()}
	s := service.NewProjectService(newFakeProjectRepo(p), nopPublisher{})

	_, err := s.GetProject(context.Background(), uuid.New(), p.ID)
	require.ErrorIs(t, err, service.ErrAccessDenied)
}

func TestProjectService_DeleteProject_OwnershipChecked(t *testing.T) {
	ownerID := uuid.New()
	p := &model.Project{ID: uuid.New(), UserID: ownerID}
	repo := newFakeProjectRepo(p)
	s := service.NewProjectService(repo, nopPublisher{})

	err := s.DeleteProject(context.Background(), uuid.New(), p.ID)
	require.ErrorIs(t, err, service.ErrAccessDenied)
	require.Contains(t, repo.projects, p.ID)

	require.NoError(t, s.DeleteProject(context.Background(), ownerID, p.ID))
	require.NotContains(t, repo.projects, p.ID)
}

func TestProjectService_MoveToFolder_SetsAndClears(t *testing.T) {
	ownerID := uuid.New()
	p := &model.Project{ID: uuid.New(), UserID: ownerID}
	repo := newFakeProjectRepo(p)
	s := service.NewProjectService(repo, nopPublisher{})

	folderID := uuid.New()
	require.NoError(t, s.MoveToFolder(context.Background(), ownerID, p.ID, &folderID))
	require.Equal(t, &folderID, repo.projects[p.ID].FolderID)

	require.NoError(t, s.MoveToFolder(context.Background(), ownerID, p.ID, nil))
	require.Nil(t, repo.projects[p.ID].FolderID)
}

func TestProjectService_ListByFolder_RootDisjointFromFolders(t *testing.T) {
	ownerID := uuid.New()
	folderID := uuid.New()
	inFolder := &model.Project{ID: uuid.New(), UserID: ownerID, FolderID: &folderID}
	unfiled := &model.Project{ID: uuid.New(), UserID: ownerID}
	s := service.NewProjectService(newFakeProjectRepo(inFolder, unfiled), nopPublisher{})

	root, err := s.ListProjectsByFolder(context.Background(), ownerID, nil)
	require.NoError(t, err)
	require.Len(t, root, 1)
	require.Equal(t, unfiled.ID, root[0].ID)

	filed, err := s.ListProjectsByFolder(context.Background(), ownerID, &folderID)
	require.NoError(t, err)
	require.Len(t, filed, 1)
	require.Equal(t, inFolder.ID, filed[0].ID)
}
