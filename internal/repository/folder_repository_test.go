package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Pawandasila/ai-image-editor/internal/model"
	repo "github.com/Pawandasila/ai-image-editor/internal/repository"
)

func TestPostgresFolderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	id := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO folders (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`)).WithArgs("Vacation", userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	nid, err := r.Create(context.Background(), &model.Folder{Name: "Vacation", UserID: userID})
	require.NoError(t, err)
	require.Equal(t, id, nid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFolderRepository_FindByUserAndName_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM folders WHERE user_id = $1 AND name = $2`)).
		WithArgs(userID, "Nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	f, err := r.FindByUserAndName(context.Background(), userID, "Nope")
	require.NoError(t, err)
	require.Nil(t, f)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFolderRepository_ListByUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM folders WHERE user_id = $1 ORDER BY created_at ASC`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}))

	folders, err := r.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, folders)
	require.Len(t, folders, 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFolderRepository_ListByUser_Order(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	userID := uuid.New()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), "First", userID, older, older).
		AddRow(uuid.New(), "Second", userID, newer, newer)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM folders WHERE user_id = $1 ORDER BY created_at ASC`)).
		WithArgs(userID).WillReturnRows(rows)

	folders, err := r.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	require.Equal(t, "First", folders[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFolderRepository_DeleteAndDetachProjects(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	folderID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE projects SET folder_id = NULL, updated_at = now() WHERE folder_id = $1`)).
		WithArgs(folderID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM folders WHERE id = $1`)).
		WithArgs(folderID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.DeleteAndDetachProjects(context.Background(), folderID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFolderRepository_DeleteAndDetachProjects_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFolderRepository(sqlxDB)

	folderID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE projects SET folder_id = NULL, updated_at = now() WHERE folder_id = $1`)).
		WithArgs(folderID).WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	require.Error(t, r.DeleteAndDetachProjects(context.Background(), folderID))
	require.NoError(t, mock.ExpectationsWereMet())
}
