package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `db:"id"`
	TokenIdentifier  string    `db:"token_identifier"`
	Name             string    `db:"name"`
	Email            *string   `db:"email"`
	ImageURL         *string   `db:"image_url"`
	Plan             string    `db:"plan"`
	ProjectsUsed     int       `db:"projects_used"`
	ExportsThisMonth int       `db:"exports_this_month"`
	CreatedAt        time.Time `db:"created_at"`
	LastActiveAt     time.Time `db:"last_active_at"`
}
