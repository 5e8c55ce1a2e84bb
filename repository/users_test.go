package repository

import (
	"context"
	"testing"

	"event-planner-api/models"
	"event-planner-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos() (*Users, *Events) {
	users := store.NewMemoryUserStore()
	eventStore := store.NewMemoryEventStore()
	return NewUsers(users, eventStore, nil), NewEvents(eventStore, users, nil)
}

func strPtr(s string) *string { return &s }

func TestSignUpAssignsID(t *testing.T) {
	usersRepo, _ := newRepos()

	user, err := usersRepo.SignUp(context.Background(), models.UserSignIn{
		Email:    "a@x.com",
		Password: "p",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	_, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInUnknownEmail(t *testing.T) {
	usersRepo, _ := newRepos()

	_, err := usersRepo.SignIn(context.Background(), models.UserSignIn{
		Email:    "nobody@x.com",
		Password: "p",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSignInWrongPassword(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	_, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = usersRepo.SignIn(ctx, models.UserSignIn{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestSignInReturnsEvents(t *testing.T) {
	usersRepo, eventsRepo := newRepos()
	ctx := context.Background()

	user, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	created, err := eventsRepo.Create(ctx, models.Event{Title: "Book Launch", UserID: user.ID})
	require.NoError(t, err)

	signedIn, err := usersRepo.SignIn(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	require.Len(t, signedIn.Events, 1)
	assert.Equal(t, created.ID, signedIn.Events[0].ID)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	_, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	second, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "b@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = usersRepo.Update(ctx, second.ID, models.UserUpdate{Email: strPtr("a@x.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUserOwnEmailIsNotAConflict(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	user, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	updated, err := usersRepo.Update(ctx, user.ID, models.UserUpdate{Email: strPtr("a@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestUpdateUserKeepsUntouchedFields(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	user, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = usersRepo.Update(ctx, user.ID, models.UserUpdate{Email: strPtr("new@x.com")})
	require.NoError(t, err)

	// Old password must still sign in against the new email.
	_, err = usersRepo.SignIn(ctx, models.UserSignIn{Email: "new@x.com", Password: "p"})
	assert.NoError(t, err)
}

func TestUpdateUnknownUser(t *testing.T) {
	usersRepo, _ := newRepos()

	_, err := usersRepo.Update(context.Background(), "999", models.UserUpdate{Password: strPtr("p")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserKeepsTheirEvents(t *testing.T) {
	usersRepo, eventsRepo := newRepos()
	ctx := context.Background()

	user, err := usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	created, err := eventsRepo.Create(ctx, models.Event{Title: "Orphaned", UserID: user.ID})
	require.NoError(t, err)

	_, err = usersRepo.Delete(ctx, user.ID)
	require.NoError(t, err)

	// No cascade: the event survives its owner.
	event, err := eventsRepo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, event.UserID)
}

func TestDeleteAllUsers(t *testing.T) {
	usersRepo, _ := newRepos()
	ctx := context.Background()

	_, err := usersRepo.DeleteAll(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = usersRepo.SignUp(ctx, models.UserSignIn{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	_, err = usersRepo.SignUp(ctx, models.UserSignIn{Email: "b@x.com", Password: "p"})
	require.NoError(t, err)

	count, err := usersRepo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := usersRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
