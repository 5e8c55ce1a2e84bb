// Package events defines the message envelopes published to RabbitMQ
// when users sign up and events are created.
package events

import "time"

const SchemaVersion = "1.0"

type UserEvent struct {
	Event     string    `json:"event"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      UserData  `json:"data"`
}

type UserData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// NewUserCreated builds the USER_CREATED envelope for a fresh signup.
func NewUserCreated(userID, email string) UserEvent {
	return UserEvent{
		Event:     "USER_CREATED",
		Version:   SchemaVersion,
		Timestamp: time.Now().UTC(),
		Data:      UserData{UserID: userID, Email: email},
	}
}

type EventCreated struct {
	Event     string    `json:"event"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}

type EventData struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
}

// NewEventCreated builds the EVENT_CREATED envelope for a new event.
func NewEventCreated(eventID, userID, title string) EventCreated {
	return EventCreated{
		Event:     "EVENT_CREATED",
		Version:   SchemaVersion,
		Timestamp: time.Now().UTC(),
		Data:      EventData{EventID: eventID, UserID: userID, Title: title},
	}
}
