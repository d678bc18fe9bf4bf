package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Pawandasila/ai-image-editor/internal/model"
	repo "github.com/Pawandasila/ai-image-editor/internal/repository"
)

func TestPostgresProjectRepository_Create_FreePlanAtLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan, projects_used FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"plan", "projects_used"}).AddRow("free", 3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM projects WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	_, err = r.Create(context.Background(), &model.Project{Title: "Fourth", UserID: userID, Width: 800, Height: 600})
	require.ErrorIs(t, err, repo.ErrProjectQuota)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_Create_ProPlanOverLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	userID := uuid.New()
	newID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan, projects_used FROM users WHERE id = $1 FOR UPDATE`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"plan", "projects_used"}).AddRow("pro", 3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM projects WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO projects (title, user_id, folder_id, original_image_url, current_image_url, thumbnail_url, width, height, canvas_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`)).WithArgs("Fourth", userID, nil, nil, nil, nil, 800, 600, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET projects_used = projects_used + 1, last_active_at = now() WHERE id = $1`)).
		WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	nid, err := r.Create(context.Background(), &model.Project{Title: "Fourth", UserID: userID, Width: 800, Height: 600})
	require.NoError(t, err)
	require.Equal(t, newID, nid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_Delete_DecrementsFloored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	projectID := uuid.New()
	ownerID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM projects WHERE id = $1`)).
		WithArgs(projectID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET projects_used = GREATEST(projects_used - 1, 0), last_active_at = now() WHERE id = $1`)).
		WithArgs(ownerID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.Delete(context.Background(), projectID, ownerID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_ListByFolder_Root(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM projects WHERE user_id = $1 AND folder_id IS NULL ORDER BY updated_at DESC`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	projects, err := r.ListByFolder(context.Background(), userID, nil)
	require.NoError(t, err)
	require.NotNil(t, projects)
	require.Len(t, projects, 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_ListByFolder_Specific(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	userID := uuid.New()
	folderID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM projects WHERE user_id = $1 AND folder_id = $2 ORDER BY updated_at DESC`)).
		WithArgs(userID, folderID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = r.ListByFolder(context.Background(), userID, &folderID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_Update_OnlySuppliedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	projectID := uuid.New()
	ownerID := uuid.New()
	width := 1024
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE projects SET width = $1, updated_at = now() WHERE id = $2`)).
		WithArgs(width, projectID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET last_active_at = now() WHERE id = $1`)).
		WithArgs(ownerID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = r.Update(context.Background(), projectID, ownerID, repo.ProjectPatch{Width: &width})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProjectRepository_Update_NoFieldsStillTouchesTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresProjectRepository(sqlxDB)

	projectID := uuid.New()
	ownerID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE projects SET updated_at = now() WHERE id = $1`)).
		WithArgs(projectID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET last_active_at = now() WHERE id = $1`)).
		WithArgs(ownerID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = r.Update(context.Background(), projectID, ownerID, repo.ProjectPatch{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
