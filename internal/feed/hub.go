// Package feed pushes booking changes to connected driver dashboards.
package feed

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"transport_booking/internal/models"
)

const (
	EventBookingCreated      = "booking.created"
	EventTripOutcomeRecorded = "booking.trip_recorded"
)

type Event struct {
	Type    string                `json:"type"`
	Booking models.BookingRequest `json:"booking"`
}

// Client is one subscriber. *websocket.Conn satisfies it.
type Client interface {
	WriteJSON(v interface{}) error
}

// clientBuffer is how many events a subscriber may lag behind before the hub
// drops it.
const clientBuffer = 16

type subscriber struct {
	client Client
	send   chan Event
}

// Hub fans events out to every registered client. Each client gets its own
// queue and writer goroutine, so a client never sees concurrent writes and a
// stalled client only stalls itself.
type Hub struct {
	clients   map[Client]*subscriber
	broadcast chan Event
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 100
	}
	h := &Hub{
		clients:   make(map[Client]*subscriber),
		broadcast: make(chan Event, buffer),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case ev := <-h.broadcast:
			h.deliver(ev)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) deliver(ev Event) {
	var slow []Client

	h.mu.Lock()
	for c, s := range h.clients {
		select {
		case s.send <- ev:
		default:
			delete(h.clients, c)
			close(s.send)
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		logrus.WithFields(logrus.Fields{
			"event":    ev.Type,
			"conn_ptr": fmt.Sprintf("%p", c),
		}).Warn("Booking feed client too slow, dropping it.")
		closeClient(c)
	}
}

// writePump drains one subscriber's queue until it is closed or a write fails.
func (h *Hub) writePump(s *subscriber) {
	for ev := range s.send {
		if err := s.client.WriteJSON(ev); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event":    ev.Type,
				"conn_ptr": fmt.Sprintf("%p", s.client),
			}).Warn("Failed to send booking event to client, unregistering.")
			closeClient(s.client)
			h.Unregister(s.client)
			return
		}
	}
}

func closeClient(c Client) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close()
	}
}

func (h *Hub) Register(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		return
	}
	s := &subscriber{client: c, send: make(chan Event, clientBuffer)}
	h.clients[c] = s
	go h.writePump(s)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", c)).Info("Client registered with booking feed.")
}

func (h *Hub) Unregister(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.clients[c]
	if !ok {
		return
	}
	delete(h.clients, c)
	close(s.send)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", c)).Info("Client unregistered from booking feed.")
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues ev for delivery. It never blocks: when the buffer is full or
// the hub is closed the event is dropped.
func (h *Hub) Publish(ev Event) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- ev:
	default:
		logrus.WithField("event", ev.Type).Warn("Booking feed channel full, dropping event.")
	}
}

func (h *Hub) BookingCreated(b models.BookingRequest) {
	h.Publish(Event{Type: EventBookingCreated, Booking: b})
}

func (h *Hub) TripOutcomeRecorded(b models.BookingRequest) {
	h.Publish(Event{Type: EventTripOutcomeRecorded, Booking: b})
}

// Close stops delivery and the writer goroutines. Registered clients are left
// for their handlers to close.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		defer h.mu.Unlock()
		for c, s := range h.clients {
			delete(h.clients, c)
			close(s.send)
		}
	})
}
