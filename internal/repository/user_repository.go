package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pawandasila/ai-image-editor/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByToken(ctx context.Context, tokenIdentifier string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error
	IncrementExports(ctx context.Context, id uuid.UUID) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (token_identifier, name, email, image_url, plan, projects_used, exports_this_month)
		VALUES ($1, $2, $3, $4, $5, 0, 0)
		RETURNING id
	`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, user.TokenIdentifier, user.Name, user.Email, user.ImageURL, user.Plan).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByToken(ctx context.Context, tokenIdentifier string) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE token_identifier = $1`
	err := r.db.GetContext(ctx, &user, query, tokenIdentifier)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE users SET name = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, name, id)
	return err
}

func (r *postgresUserRepository) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error {
	query := `UPDATE users SET plan = $1, last_active_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, plan, id)
	return err
}

func (r *postgresUserRepository) IncrementExports(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET exports_this_month = exports_this_month + 1, last_active_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
