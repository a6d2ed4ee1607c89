package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationsTopic is the broker topic every created application is published to.
const ApplicationsTopic = "applications"

// MaxUserNameLength mirrors the varchar(64) column in the applications table.
const MaxUserNameLength = 64

// Application is a stored row of the applications table.
type Application struct {
	ID          uuid.UUID
	UserName    string
	Description string
	CreatedAt   time.Time
}

// ApplicationCreate is the input for creating an application. ID and CreatedAt
// are optional; the database fills them in when they are nil.
type ApplicationCreate struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	UserName    string     `json:"user_name"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ApplicationRead is the outward facing projection of an Application.
type ApplicationRead struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewApplicationRead(app Application) ApplicationRead {
	return ApplicationRead{
		ID:          app.ID,
		UserName:    app.UserName,
		Description: app.Description,
		CreatedAt:   app.CreatedAt,
	}
}

type ApplicationRepository interface {
	GetMulti(ctx context.Context, query ApplicationQuery) ([]Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	Create(ctx context.Context, input ApplicationCreate) (Application, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
