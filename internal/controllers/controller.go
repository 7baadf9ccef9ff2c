package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"transport_booking/internal/booking"
	"transport_booking/internal/feed"
	"transport_booking/internal/identity"
	"transport_booking/internal/session"
)

// Pinger is the slice of the store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Deps struct {
	Identity *identity.Service
	Ledger   *booking.Ledger
	Gate     *session.Gate
	Hub      *feed.Hub
	Store    Pinger
	Cookie   CookieConfig
	// AllowedOrigins limits websocket upgrades; empty means same-origin only.
	AllowedOrigins []string
}

// Controller holds the collaborators every handler delegates to.
type Controller struct {
	identity *identity.Service
	ledger   *booking.Ledger
	gate     *session.Gate
	hub      *feed.Hub
	store    Pinger
	cookie   CookieConfig
	upgrader websocket.Upgrader
}

func New(d Deps) *Controller {
	if d.Cookie.Name == "" {
		d.Cookie.Name = "session"
	}
	if d.Cookie.TTL <= 0 {
		d.Cookie.TTL = 24 * time.Hour
	}
	return &Controller{
		identity: d.Identity,
		ledger:   d.Ledger,
		gate:     d.Gate,
		hub:      d.Hub,
		store:    d.Store,
		cookie:   d.Cookie,
		upgrader: newUpgrader(d.AllowedOrigins),
	}
}

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	u := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) == 0 {
		// nil CheckOrigin: gorilla rejects cross-origin upgrades
		return u
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	u.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
	return u
}
