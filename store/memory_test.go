package store

import (
	"context"
	"testing"

	"event-planner-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The memory store must honor the same contract the indexed backends
// do: duplicate emails conflict at the storage layer, deletes hand the
// removed record back, and patches leave absent fields alone.

func TestMemoryUserStoreDuplicateEmailConflicts(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Save(ctx, models.User{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = s.Save(ctx, models.User{Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryUserStoreUpdateEmailConflicts(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Save(ctx, models.User{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	second, err := s.Save(ctx, models.User{Email: "b@x.com", Password: "p"})
	require.NoError(t, err)

	email := "a@x.com"
	_, err = s.Update(ctx, second.ID, models.UserUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryEventStoreDeleteReturnsRecord(t *testing.T) {
	s := NewMemoryEventStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Event{Title: "Meetup", UserID: "1"})
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, deleted.ID)
	assert.Equal(t, "Meetup", deleted.Title)

	_, err = s.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEventStorePatchKeepsAbsentFields(t *testing.T) {
	s := NewMemoryEventStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Event{
		Title:    "Meetup",
		Tags:     []string{"go"},
		Location: "Online",
		UserID:   "1",
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := s.Update(ctx, saved.ID, models.EventUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, []string{"go"}, updated.Tags)
	assert.Equal(t, "Online", updated.Location)
	assert.Equal(t, "1", updated.UserID)
}

func TestMemoryStoresListInInsertionOrder(t *testing.T) {
	s := NewMemoryEventStore()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Save(ctx, models.Event{Title: title, UserID: "1"})
		require.NoError(t, err)
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "third", all[2].Title)
}
