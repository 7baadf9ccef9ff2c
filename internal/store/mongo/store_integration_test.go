package mongo

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI is required for integration tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	dbName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s := New(client, dbName)
	require.NoError(t, s.ensureIndexes(ctx))

	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return s
}

func TestConcurrentCreateUserKeepsOneRecord(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateUser(ctx, models.User{UserID: "admin", Role: models.RoleAdmin, Password: "123"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, store.ErrDuplicate)
	}
	assert.Equal(t, 1, created)

	n, err := s.users.CountDocuments(ctx, map[string]string{"userId": "admin"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestBookingRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	b := &models.BookingRequest{ID: uuid.NewString(), DriverID: "d-1", PassengerName: "A", PickupLocation: "X", DropoffLocation: "Y"}
	require.NoError(t, s.CreateBooking(ctx, b))
	require.NoError(t, s.UpdateTripOutcome(ctx, b.ID, "12.5", "3.00"))

	got, err := s.FindBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.5", got.DistanceTraveled)
	assert.Equal(t, "3.00", got.TollUsage)
	assert.Equal(t, "A", got.PassengerName)

	mine, err := s.ListBookingsByDriver(ctx, "d-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	err = s.UpdateTripOutcome(ctx, "missing", "1", "1")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.FindBooking(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
