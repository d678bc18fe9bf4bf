package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pawandasila/ai-image-editor/internal/model"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *model.Folder) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Folder, error)
	FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*model.Folder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Folder, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	DeleteAndDetachProjects(ctx context.Context, id uuid.UUID) error
}

type postgresFolderRepository struct {
	db *sqlx.DB
}

func NewPostgresFolderRepository(db *sqlx.DB) FolderRepository {
	return &postgresFolderRepository{db: db}
}

func (r *postgresFolderRepository) Create(ctx context.Context, folder *model.Folder) (uuid.UUID, error) {
	query := `
		INSERT INTO folders (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, folder.Name, folder.UserID).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresFolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Folder, error) {
	var folder model.Folder
	query := `SELECT * FROM folders WHERE id = $1`
	err := r.db.GetContext(ctx, &folder, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &folder, nil
}

func (r *postgresFolderRepository) FindByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*model.Folder, error) {
	var folder model.Folder
	query := `SELECT * FROM folders WHERE user_id = $1 AND name = $2`
	err := r.db.GetContext(ctx, &folder, query, userID, name)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &folder, nil
}

func (r *postgresFolderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Folder, error) {
	var folders []model.Folder
	query := `SELECT * FROM folders WHERE user_id = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &folders, query, userID)

	if err != nil {
		return nil, err
	}

	if folders == nil {
		folders = []model.Folder{}
	}

	return folders, nil
}

func (r *postgresFolderRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE folders SET name = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, name, id)
	return err
}

// DeleteAndDetachProjects moves every project out of the folder and removes the
// folder row in one transaction, so no reader ever sees a project pointing at a
// folder that is gone.
func (r *postgresFolderRepository) DeleteAndDetachProjects(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	detach := `UPDATE projects SET folder_id = NULL, updated_at = now() WHERE folder_id = $1`
	if _, err := tx.ExecContext(ctx, detach, id); err != nil {
		return err
	}

	remove := `DELETE FROM folders WHERE id = $1`
	if _, err := tx.ExecContext(ctx, remove, id); err != nil {
		return err
	}

	return tx.Commit()
}
