package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/Pawandasila/ai-image-editor/internal/model"
)

// ErrProjectQuota is returned by Create when the owner's plan does not allow
// another project.
var ErrProjectQuota = errors.New("project quota reached for plan")

// ProjectPatch lists the fields a partial update may touch. A nil field means
// "leave unchanged", never "set to empty".
type ProjectPatch struct {
	CanvasState           types.JSONText
	Width                 *int
	Height                *int
	CurrentImageURL       *string
	ThumbnailURL          *string
	ActiveTransformations *string
	BackgroundRemoved     *bool
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	ListByFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]model.Project, error)
	Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, patch ProjectPatch) error
	SetFolder(ctx context.Context, id uuid.UUID, folderID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

type postgresProjectRepository struct {
	db *sqlx.DB
}

func NewPostgresProjectRepository(db *sqlx.DB) ProjectRepository {
	return &postgresProjectRepository{db: db}
}

// Create inserts the project and bumps the owner's usage counter in one
// transaction. The owner row is locked first so the quota check-then-insert
// cannot race with a concurrent create by the same owner.
func (r *postgresProjectRepository) Create(ctx context.Context, project *model.Project) (uuid.UUID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	var owner struct {
		Plan         string `db:"plan"`
		ProjectsUsed int    `db:"projects_used"`
	}
	err = tx.GetContext(ctx, &owner, `SELECT plan, projects_used FROM users WHERE id = $1 FOR UPDATE`, project.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	var count int
	err = tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, project.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	if !model.CanCreateProject(owner.Plan, count) {
		return uuid.Nil, ErrProjectQuota
	}

	insert := `
		INSERT INTO projects (title, user_id, folder_id, original_image_url, current_image_url, thumbnail_url, width, height, canvas_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var newID uuid.UUID
	err = tx.QueryRowxContext(ctx, insert,
		project.Title, project.UserID, project.FolderID,
		project.OriginalImageURL, project.CurrentImageURL, project.ThumbnailURL,
		project.Width, project.Height, project.CanvasState,
	).Scan(&newID)
	if err != nil {
		return uuid.Nil, err
	}

	touch := `UPDATE users SET projects_used = projects_used + 1, last_active_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, touch, project.UserID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	query := `SELECT * FROM projects WHERE id = $1`
	err := r.db.GetContext(ctx, &project, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *postgresProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT * FROM projects WHERE user_id = $1 ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &projects, query, userID)

	if err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []model.Project{}
	}

	return projects, nil
}

func (r *postgresProjectRepository) ListByFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	var err error

	if folderID != nil {
		query := `SELECT * FROM projects WHERE user_id = $1 AND folder_id = $2 ORDER BY updated_at DESC`
		err = r.db.SelectContext(ctx, &projects, query, userID, *folderID)
	} else {
		query := `SELECT * FROM projects WHERE user_id = $1 AND folder_id IS NULL ORDER BY updated_at DESC`
		err = r.db.SelectContext(ctx, &projects, query, userID)
	}

	if err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []model.Project{}
	}

	return projects, nil
}

// Update applies only the supplied patch fields and always refreshes the
// project's updated_at along with the owner's last_active_at.
func (r *postgresProjectRepository) Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, patch ProjectPatch) error {
	var setClauses []string
	var args []interface{}
	argID := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.CanvasState != nil {
		addClause("canvas_state", patch.CanvasState)
	}
	if patch.Width != nil {
		addClause("width", *patch.Width)
	}
	if patch.Height != nil {
		addClause("height", *patch.Height)
	}
	if patch.CurrentImageURL != nil {
		addClause("current_image_url", *patch.CurrentImageURL)
	}
	if patch.ThumbnailURL != nil {
		addClause("thumbnail_url", *patch.ThumbnailURL)
	}
	if patch.ActiveTransformations != nil {
		addClause("active_transformations", *patch.ActiveTransformations)
	}
	if patch.BackgroundRemoved != nil {
		addClause("background_removed", *patch.BackgroundRemoved)
	}

	setClauses = append(setClauses, "updated_at = now()")

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	touch := `UPDATE users SET last_active_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, touch, ownerID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresProjectRepository) SetFolder(ctx context.Context, id uuid.UUID, folderID *uuid.UUID) error {
	query := `UPDATE projects SET folder_id = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, folderID, id)
	return err
}

// Delete removes the project and decrements the owner's usage counter, floored
// at zero, in one transaction.
func (r *postgresProjectRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return err
	}

	touch := `UPDATE users SET projects_used = GREATEST(projects_used - 1, 0), last_active_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, touch, ownerID); err != nil {
		return err
	}

	return tx.Commit()
}
