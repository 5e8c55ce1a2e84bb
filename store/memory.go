package store

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"event-planner-api/models"
)

// MemoryUserStore is a map-backed UserStore used by tests and the
// DB_DRIVER=memory local mode. It enforces the same unique-email rule
// the real backends enforce with an index.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[string]models.User)}
}

func (s *MemoryUserStore) GetAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sortByNumericID(users, func(u models.User) string { return u.ID })
	return users, nil
}

func (s *MemoryUserStore) Get(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUserStore) Save(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return models.User{}, ErrConflict
		}
	}

	user.ID = strconv.Itoa(s.nextID)
	user.Events = nil
	s.nextID++
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryUserStore) Update(_ context.Context, id string, patch models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if patch.Email != nil {
		for _, u := range s.users {
			if u.ID != id && u.Email == *patch.Email {
				return models.User{}, ErrConflict
			}
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}

	s.users[id] = user
	return user, nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	delete(s.users, id)
	return user, nil
}

func (s *MemoryUserStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(len(s.users))
	s.users = make(map[string]models.User)
	return count, nil
}

// MemoryEventStore is a map-backed EventStore.
type MemoryEventStore struct {
	mu     sync.RWMutex
	nextID int
	events map[string]models.Event
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{nextID: 1, events: make(map[string]models.Event)}
}

func (s *MemoryEventStore) GetAll(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, copyEvent(e))
	}
	sortByNumericID(events, func(e models.Event) string { return e.ID })
	return events, nil
}

func (s *MemoryEventStore) Get(_ context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	return copyEvent(event), nil
}

func (s *MemoryEventStore) GetByUser(_ context.Context, userID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0)
	for _, e := range s.events {
		if e.UserID == userID {
			events = append(events, copyEvent(e))
		}
	}
	sortByNumericID(events, func(e models.Event) string { return e.ID })
	return events, nil
}

func (s *MemoryEventStore) Save(_ context.Context, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.events[event.ID] = copyEvent(event)
	return event, nil
}

func (s *MemoryEventStore) Update(_ context.Context, id string, patch models.EventUpdate) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Image != nil {
		event.Image = *patch.Image
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Tags != nil {
		event.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.UserID != nil {
		event.UserID = *patch.UserID
	}

	s.events[id] = event
	return copyEvent(event), nil
}

func (s *MemoryEventStore) Delete(_ context.Context, id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	delete(s.events, id)
	return copyEvent(event), nil
}

func (s *MemoryEventStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := int64(len(s.events))
	s.events = make(map[string]models.Event)
	return count, nil
}

func copyEvent(e models.Event) models.Event {
	e.Tags = append([]string(nil), e.Tags...)
	return e
}

// sortByNumericID orders records by their assigned counter so listings
// are stable, matching insertion order like the real backends.
func sortByNumericID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		a, _ := strconv.Atoi(id(items[i]))
		b, _ := strconv.Atoi(id(items[j]))
		return a < b
	})
}
