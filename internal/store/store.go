package store

import (
	"context"
	"errors"

	"transport_booking/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("record already exists")
	ErrUnavailable = errors.New("storage unavailable")
)

type UserStore interface {
	FindUser(ctx context.Context, userID string) (models.User, error)
	// CreateUser fails with ErrDuplicate when the userId is taken.
	CreateUser(ctx context.Context, user models.User) error
}

type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.BookingRequest) error
	// ListBookings returns every booking in insertion order.
	ListBookings(ctx context.Context) ([]models.BookingRequest, error)
	ListBookingsByDriver(ctx context.Context, driverID string) ([]models.BookingRequest, error)
	FindBooking(ctx context.Context, id string) (models.BookingRequest, error)
	// UpdateTripOutcome overwrites the two outcome fields of an existing booking
	// and nothing else. It fails with ErrNotFound when no booking has that id.
	UpdateTripOutcome(ctx context.Context, id, distanceTraveled, tollUsage string) error
}

type Store interface {
	UserStore
	BookingStore
	Ping(ctx context.Context) error
	Close() error
}
