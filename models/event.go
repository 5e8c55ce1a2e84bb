package models

// Event belongs to the user referenced by UserID. UserID must resolve to
// an existing user when the event is created or reassigned.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	UserID      string   `json:"user_id" validate:"required"`
}

// EventUpdate is a partial-update payload. Only non-nil fields are
// applied; absent fields keep their stored values.
type EventUpdate struct {
	Title       *string   `json:"title"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Location    *string   `json:"location"`
	UserID      *string   `json:"user_id"`
}
