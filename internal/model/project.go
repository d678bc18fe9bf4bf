package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// Project is a single editing session over one source image. CanvasState is
// the serialized editor document and is passed through opaquely.
type Project struct {
	ID                    uuid.UUID      `db:"id"`
	Title                 string         `db:"title"`
	UserID                uuid.UUID      `db:"user_id"`
	FolderID              *uuid.UUID     `db:"folder_id"`
	OriginalImageURL      *string        `db:"original_image_url"`
	CurrentImageURL       *string        `db:"current_image_url"`
	ThumbnailURL          *string        `db:"thumbnail_url"`
	Width                 int            `db:"width"`
	Height                int            `db:"height"`
	CanvasState           types.JSONText `db:"canvas_state"`
	ActiveTransformations *string        `db:"active_transformations"`
	BackgroundRemoved     *bool          `db:"background_removed"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}
