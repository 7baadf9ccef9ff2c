package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

const uniqueViolation = "23505"

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects through lib/pq and migrates the users and booking_requests tables.
func Open(dsn string, log gormlogger.Interface) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), newConfig(log))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.BookingRequest{}); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}
	return New(db), nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func newConfig(log gormlogger.Interface) *gorm.Config {
	cfg := &gorm.Config{
		// every write is a single-row statement
		SkipDefaultTransaction: true,
	}
	if log != nil {
		cfg.Logger = log
	}
	return cfg
}

func (s *Store) FindUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, translate(fmt.Sprintf("user %q", userID), err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return translate(fmt.Sprintf("user %q", user.UserID), err)
	}
	return nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.BookingRequest) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return translate(fmt.Sprintf("booking %q", booking.ID), err)
	}
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]models.BookingRequest, error) {
	bookings := []models.BookingRequest{}
	if err := s.db.WithContext(ctx).Order("created_at").Find(&bookings).Error; err != nil {
		return nil, translate("bookings", err)
	}
	return bookings, nil
}

func (s *Store) ListBookingsByDriver(ctx context.Context, driverID string) ([]models.BookingRequest, error) {
	bookings := []models.BookingRequest{}
	if err := s.db.WithContext(ctx).Where("driver_id = ?", driverID).Order("created_at").Find(&bookings).Error; err != nil {
		return nil, translate(fmt.Sprintf("bookings for driver %q", driverID), err)
	}
	return bookings, nil
}

func (s *Store) FindBooking(ctx context.Context, id string) (models.BookingRequest, error) {
	var booking models.BookingRequest
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return models.BookingRequest{}, translate(fmt.Sprintf("booking %q", id), err)
	}
	return booking, nil
}

func (s *Store) UpdateTripOutcome(ctx context.Context, id, distanceTraveled, tollUsage string) error {
	res := s.db.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"distance_traveled": distanceTraveled,
			"toll_usage":        tollUsage,
		})
	if res.Error != nil {
		return translate(fmt.Sprintf("booking %q", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %q: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm and lib/pq errors onto the store taxonomy.
func translate(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, store.ErrNotFound)
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", what, store.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w: %v", what, store.ErrUnavailable, err)
}
