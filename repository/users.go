// Package repository enforces the cross-entity invariants (email
// uniqueness, event ownership) before delegating to the store layer.
package repository

import (
	"context"
	"errors"
	"log"

	"event-planner-api/events"
	"event-planner-api/models"
	"event-planner-api/store"
)

// Publisher fans domain activity out to the message broker. A nil
// Publisher disables publishing; failures never fail the request.
type Publisher interface {
	PublishUserCreated(event events.UserEvent) error
	PublishEventCreated(event events.EventCreated) error
}

type Users struct {
	users  store.UserStore
	events store.EventStore
	pub    Publisher
}

func NewUsers(users store.UserStore, eventStore store.EventStore, pub Publisher) *Users {
	return &Users{users: users, events: eventStore, pub: pub}
}

// SignUp registers a new account. The email pre-check gives the
// friendly conflict error; the store's unique index is the backstop
// for concurrent signups, surfacing as the same conflict.
func (r *Users) SignUp(ctx context.Context, in models.UserSignIn) (models.User, error) {
	_, err := r.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	user, err := r.users.Save(ctx, models.User{Email: in.Email, Password: in.Password})
	if errors.Is(err, store.ErrConflict) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, err
	}

	if r.pub != nil {
		if err := r.pub.PublishUserCreated(events.NewUserCreated(user.ID, user.Email)); err != nil {
			log.Printf("⚠️  Failed to publish USER_CREATED for %s: %v", user.Email, err)
		}
	}
	return user, nil
}

// SignIn authenticates by email and verbatim password comparison and
// returns the user with their events attached.
func (r *Users) SignIn(ctx context.Context, in models.UserSignIn) (models.User, error) {
	user, err := r.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, err
	}
	if user.Password != in.Password {
		return models.User{}, ErrWrongPassword
	}
	return r.withEvents(ctx, user)
}

// Profile resolves a session identifier back to the user, events
// attached.
func (r *Users) Profile(ctx context.Context, id string) (models.User, error) {
	user, err := r.users.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return r.withEvents(ctx, user)
}

func (r *Users) withEvents(ctx context.Context, user models.User) (models.User, error) {
	userEvents, err := r.events.GetByUser(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.Events = userEvents
	return user, nil
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	return r.users.GetAll(ctx)
}

func (r *Users) Get(ctx context.Context, id string) (models.User, error) {
	return r.users.Get(ctx, id)
}

// Update applies a partial update. An email change re-checks
// uniqueness against every other user before touching the record.
func (r *Users) Update(ctx context.Context, id string, patch models.UserUpdate) (models.User, error) {
	if patch.Email != nil {
		existing, err := r.users.GetByEmail(ctx, *patch.Email)
		if err == nil && existing.ID != id {
			return models.User{}, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.User{}, err
		}
	}

	user, err := r.users.Update(ctx, id, patch)
	if errors.Is(err, store.ErrConflict) {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

func (r *Users) Delete(ctx context.Context, id string) (models.User, error) {
	return r.users.Delete(ctx, id)
}

// DeleteAll removes every user. Deleting an already-empty set is
// reported as not-found, mirroring the single-record delete.
func (r *Users) DeleteAll(ctx context.Context) (int64, error) {
	count, err := r.users.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, store.ErrNotFound
	}
	return count, nil
}
