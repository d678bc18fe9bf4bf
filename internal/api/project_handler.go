package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"github.com/Pawandasila/ai-image-editor/internal/model"
	"github.com/Pawandasila/ai-image-editor/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
	validate       *validator.Validate
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validate:       validator.New(),
	}
}

type CreateProjectRequest struct {
	Title            string         `json:"title" validate:"required"`
	Width            int            `json:"width" validate:"required,gt=0"`
	Height           int            `json:"height" validate:"required,gt=0"`
	OriginalImageURL *string        `json:"original_image_url,omitempty" validate:"omitempty,url"`
	CurrentImageURL  *string        `json:"current_image_url,omitempty" validate:"omitempty,url"`
	ThumbnailURL     *string        `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	CanvasState      types.JSONText `json:"canvas_state,omitempty"`
	FolderID         *uuid.UUID     `json:"folder_id,omitempty"`
}

type UpdateProjectRequest struct {
	CanvasState           types.JSONText `json:"canvas_state,omitempty"`
	Width                 *int           `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height                *int           `json:"height,omitempty" validate:"omitempty,gt=0"`
	CurrentImageURL       *string        `json:"current_image_url,omitempty" validate:"omitempty,url"`
	ThumbnailURL          *string        `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	ActiveTransformations *string        `json:"active_transformations,omitempty"`
	BackgroundRemoved     *bool          `json:"background_removed,omitempty"`
}

type MoveProjectRequest struct {
	FolderID *uuid.UUID `json:"folder_id"`
}

type ProjectResponse struct {
	ID                    uuid.UUID      `json:"id"`
	Title                 string         `json:"title"`
	FolderID              *uuid.UUID     `json:"folder_id,omitempty"`
	OriginalImageURL      *string        `json:"original_image_url,omitempty"`
	CurrentImageURL       *string        `json:"current_image_url,omitempty"`
	ThumbnailURL          *string        `json:"thumbnail_url,omitempty"`
	Width                 int            `json:"width"`
	Height                int            `json:"height"`
	CanvasState           types.JSONText `json:"canvas_state,omitempty"`
	ActiveTransformations *string        `json:"active_transformations,omitempty"`
	BackgroundRemoved     *bool          `json:"background_removed,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

func toProjectResponse(p model.Project) ProjectResponse {
	return ProjectResponse{
		ID:                    p.ID,
		Title:                 p.Title,
		FolderID:              p.FolderID,
		OriginalImageURL:      p.OriginalImageURL,
		CurrentImageURL:       p.CurrentImageURL,
		ThumbnailURL:          p.ThumbnailURL,
		Width:                 p.Width,
		Height:                p.Height,
		CanvasState:           p.CanvasState,
		ActiveTransformations: p.ActiveTransformations,
		BackgroundRemoved:     p.BackgroundRemoved,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func projectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProjectLimitReached):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error(), "code": "project_limit"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// List returns the caller's projects. Without a folder_id query it lists all
// of them; folder_id=root lists the unfiled ones; a folder id narrows to that
// folder. Always newest-updated first.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var projects []model.Project

	switch folderParam := c.Query("folder_id"); folderParam {
	case "":
		projects, err = h.projectService.ListProjects(c.Context(), user.ID)
	case "root":
		projects, err = h.projectService.ListProjectsByFolder(c.Context(), user.ID, nil)
	default:
		folderID, parseErr := uuid.Parse(folderParam)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid folder ID format"})
		}
		projects, err = h.projectService.ListProjectsByFolder(c.Context(), user.ID, &folderID)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, toProjectResponse(p))
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	projectID, err := h.projectService.CreateProject(c.Context(), user.ID, service.CreateProjectInput{
		Title:            req.Title,
		Width:            req.Width,
		Height:           req.Height,
		OriginalImageURL: req.OriginalImageURL,
		CurrentImageURL:  req.CurrentImageURL,
		ThumbnailURL:     req.ThumbnailURL,
		CanvasState:      req.CanvasState,
		FolderID:         req.FolderID,
	})
	if err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"project_id": projectID})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID format"})
	}

	project, err := h.projectService.GetProject(c.Context(), user.ID, projectID)
	if err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toProjectResponse(*project))
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID format"})
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	updatedID, err := h.projectService.UpdateProject(c.Context(), user.ID, projectID, service.UpdateProjectInput{
		CanvasState:           req.CanvasState,
		Width:                 req.Width,
		Height:                req.Height,
		CurrentImageURL:       req.CurrentImageURL,
		ThumbnailURL:          req.ThumbnailURL,
		ActiveTransformations: req.ActiveTransformations,
		BackgroundRemoved:     req.BackgroundRemoved,
	})
	if err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"project_id": updatedID})
}

func (h *ProjectHandler) MoveToFolder(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID format"})
	}

	var req MoveProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.projectService.MoveToFolder(c.Context(), user.ID, projectID, req.FolderID); err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Project moved"})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID format"})
	}

	if err := h.projectService.DeleteProject(c.Context(), user.ID, projectID); err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
