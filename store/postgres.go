package store

import (
	"context"
	"errors"
	"strconv"

	"event-planner-api/models"

	"gorm.io/gorm"
)

// userRecord and eventRecord are the relational shapes. Domain IDs are
// decimal strings; the integer key never leaves this file.
type userRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"uniqueIndex"`
	Password string
}

func (userRecord) TableName() string { return "users" }

// eventRecord keeps user_id as a plain indexed column rather than a
// declared foreign key: deleting a user must leave their events in
// place, which a real constraint would forbid.
type eventRecord struct {
	ID          uint `gorm:"primaryKey"`
	Title       string
	Image       string
	Description string
	Tags        []string `gorm:"serializer:json"`
	Location    string
	UserID      uint `gorm:"index;not null"`
}

func (eventRecord) TableName() string { return "events" }

// Migrate creates or updates both tables, including the unique email
// index that backstops the application-level signup check.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRecord{}, &eventRecord{})
}

// parseSQLID maps a domain ID string onto the integer key. An
// unparsable ID can never match a row, so callers treat the error as
// not-found.
func parseSQLID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(n), nil
}

func formatSQLID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (r userRecord) toModel() models.User {
	return models.User{
		ID:       formatSQLID(r.ID),
		Email:    r.Email,
		Password: r.Password,
	}
}

func (r eventRecord) toModel() models.Event {
	return models.Event{
		ID:          formatSQLID(r.ID),
		Title:       r.Title,
		Image:       r.Image,
		Description: r.Description,
		Tags:        r.Tags,
		Location:    r.Location,
		UserID:      formatSQLID(r.UserID),
	}
}

func translateSQLError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

// PostgresUserStore implements UserStore on top of GORM.
type PostgresUserStore struct {
	db *gorm.DB
}

func NewPostgresUserStore(db *gorm.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) GetAll(ctx context.Context) ([]models.User, error) {
	var records []userRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toModel())
	}
	return users, nil
}

func (s *PostgresUserStore) Get(ctx context.Context, id string) (models.User, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.User{}, err
	}

	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresUserStore) Save(ctx context.Context, user models.User) (models.User, error) {
	rec := userRecord{
		Email:    user.Email,
		Password: user.Password,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresUserStore) Update(ctx context.Context, id string, patch models.UserUpdate) (models.User, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.User{}, err
	}

	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}

	if patch.Email != nil {
		rec.Email = *patch.Email
	}
	if patch.Password != nil {
		rec.Password = *patch.Password
	}

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id string) (models.User, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.User{}, err
	}

	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.User{}, translateSQLError(err)
	}
	if err := s.db.WithContext(ctx).Delete(&rec).Error; err != nil {
		return models.User{}, err
	}
	return rec.toModel(), nil
}

func (s *PostgresUserStore) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&userRecord{})
	return res.RowsAffected, res.Error
}

// PostgresEventStore implements EventStore on top of GORM.
type PostgresEventStore struct {
	db *gorm.DB
}

func NewPostgresEventStore(db *gorm.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

func (s *PostgresEventStore) GetAll(ctx context.Context) ([]models.Event, error) {
	var records []eventRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, rec.toModel())
	}
	return events, nil
}

func (s *PostgresEventStore) Get(ctx context.Context, id string) (models.Event, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.Event{}, err
	}

	var rec eventRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.Event{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresEventStore) GetByUser(ctx context.Context, userID string) ([]models.Event, error) {
	key, err := parseSQLID(userID)
	if err != nil {
		// No row can carry this owner; the owner check happens upstream.
		return []models.Event{}, nil
	}

	var records []eventRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", key).Find(&records).Error; err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, rec.toModel())
	}
	return events, nil
}

func (s *PostgresEventStore) Save(ctx context.Context, event models.Event) (models.Event, error) {
	owner, err := parseSQLID(event.UserID)
	if err != nil {
		return models.Event{}, err
	}

	rec := eventRecord{
		Title:       event.Title,
		Image:       event.Image,
		Description: event.Description,
		Tags:        event.Tags,
		Location:    event.Location,
		UserID:      owner,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Event{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresEventStore) Update(ctx context.Context, id string, patch models.EventUpdate) (models.Event, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.Event{}, err
	}

	var rec eventRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.Event{}, translateSQLError(err)
	}

	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Image != nil {
		rec.Image = *patch.Image
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Tags != nil {
		rec.Tags = *patch.Tags
	}
	if patch.Location != nil {
		rec.Location = *patch.Location
	}
	if patch.UserID != nil {
		owner, err := parseSQLID(*patch.UserID)
		if err != nil {
			return models.Event{}, err
		}
		rec.UserID = owner
	}

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return models.Event{}, translateSQLError(err)
	}
	return rec.toModel(), nil
}

func (s *PostgresEventStore) Delete(ctx context.Context, id string) (models.Event, error) {
	key, err := parseSQLID(id)
	if err != nil {
		return models.Event{}, err
	}

	var rec eventRecord
	if err := s.db.WithContext(ctx).First(&rec, key).Error; err != nil {
		return models.Event{}, translateSQLError(err)
	}
	if err := s.db.WithContext(ctx).Delete(&rec).Error; err != nil {
		return models.Event{}, err
	}
	return rec.toModel(), nil
}

func (s *PostgresEventStore) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&eventRecord{})
	return res.RowsAffected, res.Error
}
