package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProjectsTable, downCreateProjectsTable)
}

func upCreateProjectsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE projects (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title TEXT NOT NULL,
	  user_id UUID NOT NULL REFERENCES users(id),
	  folder_id UUID REFERENCES folders(id),
	  original_image_url TEXT,
	  current_image_url TEXT,
	  thumbnail_url TEXT,
	  width INTEGER NOT NULL,
	  height INTEGER NOT NULL,
	  canvas_state JSONB,
	  active_transformations TEXT,
	  background_removed BOOLEAN,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX projects_by_user ON projects (user_id);
	CREATE INDEX projects_by_folder ON projects (folder_id);
	CREATE INDEX projects_by_user_updated ON projects (user_id, updated_at DESC);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateProjectsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS projects;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
