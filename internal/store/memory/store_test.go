package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

func TestCreateUserRejectsDuplicateUserID(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, models.User{UserID: "u1", Role: models.RoleHOD}))
	err := s.CreateUser(ctx, models.User{UserID: "u1", Role: models.RoleDriver})
	require.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.FindUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHOD, got.Role)
}

func TestFindUserMissing(t *testing.T) {
	_, err := New().FindUser(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListBookingsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.CreateBooking(ctx, &models.BookingRequest{ID: id}))
	}

	list, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "b", list[2].ID)
}

func TestListBookingsByDriverEmptyIsNotNil(t *testing.T) {
	list, err := New().ListBookingsByDriver(context.Background(), "d1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReturnedBookingsDoNotAliasStoredDate(t *testing.T) {
	ctx := context.Background()
	s := New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateBooking(ctx, &models.BookingRequest{ID: "b1", Date: &day}))

	got, err := s.FindBooking(ctx, "b1")
	require.NoError(t, err)
	*got.Date = got.Date.AddDate(1, 0, 0)

	again, err := s.FindBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, day, *again.Date)
}

func TestUpdateTripOutcomeMissing(t *testing.T) {
	err := New().UpdateTripOutcome(context.Background(), "nope", "1", "2")
	require.ErrorIs(t, err, store.ErrNotFound)
}
