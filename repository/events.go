package repository

import (
	"context"
	"errors"
	"log"

	"event-planner-api/events"
	"event-planner-api/models"
	"event-planner-api/store"
)

type Events struct {
	events store.EventStore
	users  store.UserStore
	pub    Publisher
}

func NewEvents(eventStore store.EventStore, users store.UserStore, pub Publisher) *Events {
	return &Events{events: eventStore, users: users, pub: pub}
}

// Create persists a new event after resolving its owner. Nothing is
// written when the owner is missing or unknown.
func (r *Events) Create(ctx context.Context, event models.Event) (models.Event, error) {
	if event.UserID == "" {
		return models.Event{}, ErrOwnerRequired
	}

	if _, err := r.users.Get(ctx, event.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Event{}, ErrOwnerNotFound
		}
		return models.Event{}, err
	}

	saved, err := r.events.Save(ctx, event)
	if err != nil {
		return models.Event{}, err
	}

	if r.pub != nil {
		if err := r.pub.PublishEventCreated(events.NewEventCreated(saved.ID, saved.UserID, saved.Title)); err != nil {
			log.Printf("⚠️  Failed to publish EVENT_CREATED for %s: %v", saved.ID, err)
		}
	}
	return saved, nil
}

func (r *Events) List(ctx context.Context) ([]models.Event, error) {
	return r.events.GetAll(ctx)
}

func (r *Events) Get(ctx context.Context, id string) (models.Event, error) {
	return r.events.Get(ctx, id)
}

// ListByUser returns a user's events, failing when the user itself is
// unknown rather than answering with an empty list.
func (r *Events) ListByUser(ctx context.Context, userID string) ([]models.Event, error) {
	if _, err := r.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return r.events.GetByUser(ctx, userID)
}

// Update applies a partial update. A user_id change is validated
// against the user store before the event is touched.
func (r *Events) Update(ctx context.Context, id string, patch models.EventUpdate) (models.Event, error) {
	if patch.UserID != nil {
		if _, err := r.users.Get(ctx, *patch.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Event{}, ErrOwnerNotFound
			}
			return models.Event{}, err
		}
	}
	return r.events.Update(ctx, id, patch)
}

func (r *Events) Delete(ctx context.Context, id string) (models.Event, error) {
	return r.events.Delete(ctx, id)
}

// DeleteAll removes every event, reporting not-found when there was
// nothing to delete.
func (r *Events) DeleteAll(ctx context.Context) (int64, error) {
	count, err := r.events.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, store.ErrNotFound
	}
	return count, nil
}
