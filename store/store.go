// Package store provides a uniform persistence surface for users and
// events with interchangeable Postgres, MongoDB and in-memory backends.
package store

import (
	"context"
	"errors"

	"event-planner-api/models"
)

var (
	// ErrNotFound reports that no record matched the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a storage-level uniqueness violation, e.g. a
	// duplicate email hitting the unique index.
	ErrConflict = errors.New("record already exists")
)

// UserStore is the persistence adapter for users. Save assigns the ID,
// Update applies only the fields set on the patch, and Delete returns
// the removed record. All lookups signal absence with ErrNotFound.
type UserStore interface {
	GetAll(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Save(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserUpdate) (models.User, error)
	Delete(ctx context.Context, id string) (models.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// EventStore is the persistence adapter for events. GetByUser uses the
// user_id index rather than scanning the whole collection.
type EventStore interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	GetByUser(ctx context.Context, userID string) ([]models.Event, error)
	Save(ctx context.Context, event models.Event) (models.Event, error)
	Update(ctx context.Context, id string, patch models.EventUpdate) (models.Event, error)
	Delete(ctx context.Context, id string) (models.Event, error)
	DeleteAll(ctx context.Context) (int64, error)
}
