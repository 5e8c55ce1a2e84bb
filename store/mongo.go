package store

import (
	"context"
	"errors"

	"event-planner-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection  = "users"
	eventsCollection = "events"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

// eventDoc stores user_id as the owner's hex ObjectID string, matching
// how the domain carries IDs across both backends.
type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
	Tags        []string           `bson:"tags"`
	Location    string             `bson:"location"`
	UserID      string             `bson:"user_id"`
}

// EnsureMongoIndexes creates the unique email index and the event
// owner index. The unique index is the backstop that closes the
// concurrent-signup race the application pre-check alone cannot.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Password: d.Password,
	}
}

func (d eventDoc) toModel() models.Event {
	return models.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Image:       d.Image,
		Description: d.Description,
		Tags:        d.Tags,
		Location:    d.Location,
		UserID:      d.UserID,
	}
}

// parseObjectID maps a domain ID string onto an ObjectID. An unparsable
// ID can never match a document, so callers treat the error as
// not-found.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrConflict
	default:
		return err
	}
}

// MongoUserStore implements UserStore on a MongoDB collection.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(usersCollection)}
}

func (s *MongoUserStore) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toModel())
	}
	return users, nil
}

func (s *MongoUserStore) Get(ctx context.Context, id string) (models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.User{}, err
	}

	var doc userDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.User{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return models.User{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoUserStore) Save(ctx context.Context, user models.User) (models.User, error) {
	doc := userDoc{
		Email:    user.Email,
		Password: user.Password,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return models.User{}, translateMongoError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toModel(), nil
}

func (s *MongoUserStore) Update(ctx context.Context, id string, patch models.UserUpdate) (models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.User{}, err
	}

	set := bson.M{}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var doc userDoc
	err = s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return models.User{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id string) (models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.User{}, err
	}

	var doc userDoc
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.User{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoUserStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MongoEventStore implements EventStore on a MongoDB collection.
type MongoEventStore struct {
	col *mongo.Collection
}

func NewMongoEventStore(db *mongo.Database) *MongoEventStore {
	return &MongoEventStore{col: db.Collection(eventsCollection)}
}

func (s *MongoEventStore) GetAll(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.D{})
}

func (s *MongoEventStore) GetByUser(ctx context.Context, userID string) ([]models.Event, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *MongoEventStore) find(ctx context.Context, filter interface{}) ([]models.Event, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toModel())
	}
	return events, nil
}

func (s *MongoEventStore) Get(ctx context.Context, id string) (models.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.Event{}, err
	}

	var doc eventDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Event{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoEventStore) Save(ctx context.Context, event models.Event) (models.Event, error) {
	doc := eventDoc{
		Title:       event.Title,
		Image:       event.Image,
		Description: event.Description,
		Tags:        event.Tags,
		Location:    event.Location,
		UserID:      event.UserID,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return models.Event{}, translateMongoError(err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toModel(), nil
}

func (s *MongoEventStore) Update(ctx context.Context, id string, patch models.EventUpdate) (models.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.Event{}, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.UserID != nil {
		set["user_id"] = *patch.UserID
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var doc eventDoc
	err = s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return models.Event{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoEventStore) Delete(ctx context.Context, id string) (models.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.Event{}, err
	}

	var doc eventDoc
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Event{}, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (s *MongoEventStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
