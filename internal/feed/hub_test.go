package feed

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport_booking/internal/models"
)

type fakeClient struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	closed bool
}

func (f *fakeClient) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) received() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub(10)
	defer hub.Close()

	a, b := &fakeClient{}, &fakeClient{}
	hub.Register(a)
	hub.Register(b)

	hub.BookingCreated(models.BookingRequest{ID: "b-1"})
	hub.TripOutcomeRecorded(models.BookingRequest{ID: "b-1", DistanceTraveled: "5"})

	for _, c := range []*fakeClient{a, b} {
		require.Eventually(t, func() bool { return len(c.received()) == 2 }, time.Second, 5*time.Millisecond)
		got := c.received()
		assert.Equal(t, EventBookingCreated, got[0].Type)
		assert.Equal(t, EventTripOutcomeRecorded, got[1].Type)
		assert.Equal(t, "5", got[1].Booking.DistanceTraveled)
	}
}

func TestHubDropsFailingClient(t *testing.T) {
	hub := NewHub(10)
	defer hub.Close()

	bad := &fakeClient{fail: true}
	hub.Register(bad)
	require.Equal(t, 1, hub.ClientCount())

	hub.BookingCreated(models.BookingRequest{ID: "b-1"})

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	bad.mu.Lock()
	defer bad.mu.Unlock()
	assert.True(t, bad.closed)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(10)
	defer hub.Close()

	c := &fakeClient{}
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	hub.BookingCreated(models.BookingRequest{ID: "b-1"})
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, c.received())
}

func TestPublishAfterCloseDoesNotBlock(t *testing.T) {
	hub := NewHub(1)
	hub.Close()
	hub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.BookingCreated(models.BookingRequest{ID: "b"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked after Close")
	}
}

// stuckClient never finishes a write until released, like a peer that has
// stopped reading.
type stuckClient struct {
	release chan struct{}
	closed  atomic.Bool
}

func newStuckClient() *stuckClient {
	return &stuckClient{release: make(chan struct{})}
}

func (s *stuckClient) WriteJSON(interface{}) error {
	<-s.release
	return errors.New("connection closed")
}

func (s *stuckClient) Close() error {
	s.closed.Store(true)
	return nil
}

func TestStuckClientDoesNotStallOthers(t *testing.T) {
	hub := NewHub(64)
	defer hub.Close()

	stuck := newStuckClient()
	defer close(stuck.release)
	healthy := &fakeClient{}
	hub.Register(stuck)
	hub.Register(healthy)

	for i := 0; i < 10; i++ {
		hub.BookingCreated(models.BookingRequest{ID: "b"})
	}

	require.Eventually(t, func() bool { return len(healthy.received()) == 10 }, time.Second, 5*time.Millisecond)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub(64)
	defer hub.Close()

	stuck := newStuckClient()
	defer close(stuck.release)
	hub.Register(stuck)

	for i := 0; i < clientBuffer+5; i++ {
		hub.BookingCreated(models.BookingRequest{ID: "b"})
	}

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, stuck.closed.Load())
}
