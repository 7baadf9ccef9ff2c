// Package booking owns the lifecycle of booking requests: creation by HODs and
// employees, listing for drivers, and the driver's one-step trip outcome update.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

// Fields is the free-form submission for a new booking. Nothing is required.
type Fields struct {
	Date            *time.Time
	DriverID        string
	DriverName      string
	CabNumber       string
	PassengerName   string
	PickupLocation  string
	DropoffLocation string
	PickupTime      string
	DropoffTime     string
	Notes           string
}

// Notifier hears about ledger writes after they are persisted.
type Notifier interface {
	BookingCreated(models.BookingRequest)
	TripOutcomeRecorded(models.BookingRequest)
}

type Ledger struct {
	bookings store.BookingStore
	notifier Notifier
	newID    func() string
}

type Option func(*Ledger)

func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

func NewLedger(bookings store.BookingStore, opts ...Option) *Ledger {
	l := &Ledger{bookings: bookings, newID: uuid.NewString}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Create(ctx context.Context, f Fields) (models.BookingRequest, error) {
	b := models.BookingRequest{
		ID:              l.newID(),
		DriverID:        f.DriverID,
		DriverName:      f.DriverName,
		CabNumber:       f.CabNumber,
		PassengerName:   f.PassengerName,
		PickupLocation:  f.PickupLocation,
		DropoffLocation: f.DropoffLocation,
		PickupTime:      f.PickupTime,
		DropoffTime:     f.DropoffTime,
		Notes:           f.Notes,
	}
	if f.Date != nil {
		d := *f.Date
		b.Date = &d
	}
	if err := l.bookings.CreateBooking(ctx, &b); err != nil {
		return models.BookingRequest{}, fmt.Errorf("create booking: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"driver_id":  b.DriverID,
	}).Info("Booking saved")
	if l.notifier != nil {
		l.notifier.BookingCreated(b)
	}
	return b, nil
}

func (l *Ledger) ListAll(ctx context.Context) ([]models.BookingRequest, error) {
	bookings, err := l.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListForDriver returns the bookings assigned to driverID, or an empty slice.
func (l *Ledger) ListForDriver(ctx context.Context, driverID string) ([]models.BookingRequest, error) {
	bookings, err := l.bookings.ListBookingsByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for driver: %w", err)
	}
	if bookings == nil {
		bookings = []models.BookingRequest{}
	}
	return bookings, nil
}

func (l *Ledger) FindByID(ctx context.Context, id string) (models.BookingRequest, error) {
	b, err := l.bookings.FindBooking(ctx, id)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

// RecordTripOutcome sets the distance and toll of an existing booking. A
// missing id fails with store.ErrNotFound and creates nothing. Concurrent
// calls on the same id are last-write-wins.
func (l *Ledger) RecordTripOutcome(ctx context.Context, id, distanceTraveled, tollUsage string) (models.BookingRequest, error) {
	if _, err := l.bookings.FindBooking(ctx, id); err != nil {
		return models.BookingRequest{}, fmt.Errorf("record trip outcome: %w", err)
	}
	if err := l.bookings.UpdateTripOutcome(ctx, id, distanceTraveled, tollUsage); err != nil {
		return models.BookingRequest{}, fmt.Errorf("record trip outcome: %w", err)
	}
	// read back so the caller sees the stored UpdatedAt
	b, err := l.bookings.FindBooking(ctx, id)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("record trip outcome: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":        id,
		"distance_traveled": distanceTraveled,
		"toll_usage":        tollUsage,
	}).Info("Booking updated")
	if l.notifier != nil {
		l.notifier.TripOutcomeRecorded(b)
	}
	return b, nil
}
