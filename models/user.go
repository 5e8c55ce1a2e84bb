package models

// User is an account record. The ID is an opaque string at this layer:
// the relational store renders its integer key as decimal digits and the
// document store uses the ObjectID hex form, so business logic never
// depends on the backing storage.
//
// Events is derived, not stored on the user record. It is filled on
// demand by querying events for this user's ID.
type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Events   []Event `json:"events,omitempty"`
}

// UserSignIn is the payload for both signup and signin.
type UserSignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is a partial-update payload. Only non-nil fields are
// applied; absent fields keep their stored values.
type UserUpdate struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}
