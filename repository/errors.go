package repository

import "errors"

var (
	// ErrEmailTaken means another user already registered the email.
	ErrEmailTaken = errors.New("user with email provided exists already")

	// ErrWrongPassword means the email resolved but credentials mismatch.
	ErrWrongPassword = errors.New("invalid details passed")

	// ErrOwnerRequired means an event payload is missing user_id.
	ErrOwnerRequired = errors.New("event requires a user_id")

	// ErrOwnerNotFound means an event's user_id matched no user.
	ErrOwnerNotFound = errors.New("user with supplied ID does not exist")
)
