// Package mongo stores users and bookings in MongoDB, in the "users" and
// "requests" collections.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

const (
	defaultDatabase    = "transport_booking"
	usersCollection    = "users"
	bookingsCollection = "requests"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	bookings *mongo.Collection
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open connects to uri and makes sure the unique userId index exists. The
// database name comes from the URI path, defaulting to transport_booking.
func Open(ctx context.Context, uri string) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongo uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	s := New(client, dbName)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		bookings: db.Collection(bookingsCollection),
		now:      time.Now,
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	_, err = s.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "driverId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create requests indexes: %w", err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"userId": userID}).Decode(&user); err != nil {
		return models.User{}, translate(fmt.Sprintf("user %q", userID), err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return translate(fmt.Sprintf("user %q", user.UserID), err)
	}
	return nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.BookingRequest) error {
	// mongo keeps millisecond precision; truncate so the caller's copy matches what is stored
	now := s.now().UTC().Truncate(time.Millisecond)
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = now
	}
	if _, err := s.bookings.InsertOne(ctx, booking); err != nil {
		return translate(fmt.Sprintf("booking %q", booking.ID), err)
	}
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]models.BookingRequest, error) {
	return s.findBookings(ctx, bson.M{}, "bookings")
}

func (s *Store) ListBookingsByDriver(ctx context.Context, driverID string) ([]models.BookingRequest, error) {
	return s.findBookings(ctx, bson.M{"driverId": driverID}, fmt.Sprintf("bookings for driver %q", driverID))
}

func (s *Store) findBookings(ctx context.Context, filter bson.M, what string) ([]models.BookingRequest, error) {
	cur, err := s.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, translate(what, err)
	}
	bookings := []models.BookingRequest{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, translate(what, err)
	}
	return bookings, nil
}

func (s *Store) FindBooking(ctx context.Context, id string) (models.BookingRequest, error) {
	var booking models.BookingRequest
	if err := s.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return models.BookingRequest{}, translate(fmt.Sprintf("booking %q", id), err)
	}
	return booking, nil
}

func (s *Store) UpdateTripOutcome(ctx context.Context, id, distanceTraveled, tollUsage string) error {
	res, err := s.bookings.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"distanceTraveled": distanceTraveled,
		"tollUsage":        tollUsage,
		"updatedAt":        s.now().UTC(),
	}})
	if err != nil {
		return translate(fmt.Sprintf("booking %q", id), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %q: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func translate(what string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, store.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w: %v", what, store.ErrUnavailable, err)
	}
}
