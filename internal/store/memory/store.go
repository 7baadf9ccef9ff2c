// Package memory keeps users and bookings in process memory. It backs
// DATABASE_URL=memory:// and the package tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	bookings map[string]models.BookingRequest
	order    []string

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		bookings: make(map[string]models.BookingRequest),
		now:      time.Now,
	}
}

func (s *Store) FindUser(_ context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", userID, store.ErrNotFound)
	}
	return u, nil
}

func (s *Store) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return fmt.Errorf("user %q: %w", user.UserID, store.ErrDuplicate)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) CreateBooking(_ context.Context, booking *models.BookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %q: %w", booking.ID, store.ErrDuplicate)
	}
	now := s.now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = now
	}
	s.bookings[booking.ID] = clone(*booking)
	s.order = append(s.order, booking.ID)
	return nil
}

func (s *Store) ListBookings(_ context.Context) ([]models.BookingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BookingRequest, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.bookings[id]))
	}
	return out, nil
}

func (s *Store) ListBookingsByDriver(_ context.Context, driverID string) ([]models.BookingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.BookingRequest{}
	for _, id := range s.order {
		if b := s.bookings[id]; b.DriverID == driverID {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (s *Store) FindBooking(_ context.Context, id string) (models.BookingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return models.BookingRequest{}, fmt.Errorf("booking %q: %w", id, store.ErrNotFound)
	}
	return clone(b), nil
}

func (s *Store) UpdateTripOutcome(_ context.Context, id, distanceTraveled, tollUsage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %q: %w", id, store.ErrNotFound)
	}
	b.DistanceTraveled = distanceTraveled
	b.TollUsage = tollUsage
	b.UpdatedAt = s.now()
	s.bookings[id] = b
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// clone detaches the date pointer so callers never share state with the map.
func clone(b models.BookingRequest) models.BookingRequest {
	if b.Date != nil {
		d := *b.Date
		b.Date = &d
	}
	return b
}
