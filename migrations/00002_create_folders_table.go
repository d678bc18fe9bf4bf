package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateFoldersTable, downCreateFoldersTable)
}

func upCreateFoldersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE folders (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  name TEXT NOT NULL,
	  user_id UUID NOT NULL REFERENCES users(id),
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX folders_by_user ON folders (user_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateFoldersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS folders;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
