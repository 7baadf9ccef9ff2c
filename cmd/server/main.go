package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/booking"
	"transport_booking/internal/config"
	"transport_booking/internal/controllers"
	"transport_booking/internal/feed"
	"transport_booking/internal/identity"
	"transport_booking/internal/logger"
	"transport_booking/internal/middleware"
	"transport_booking/internal/routes"
	"transport_booking/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize structured logging to file
	accessLog := logger.Setup(cfg.LogFile, cfg.LogLevel)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := config.OpenStore(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open store")
	}
	defer db.Close()

	ids := identity.NewService(db)
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_, err = ids.EnsureAdminSeed(seedCtx)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to seed admin user")
	}

	hub := feed.NewHub(256)
	defer hub.Close()

	gate, err := session.NewGate([]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session gate")
	}

	ctl := controllers.New(controllers.Deps{
		Identity: ids,
		Ledger:   booking.NewLedger(db, booking.WithNotifier(hub)),
		Gate:     gate,
		Hub:      hub,
		Store:    db,
		Cookie: controllers.CookieConfig{
			Name:   cfg.SessionCookie,
			Secure: cfg.CookieSecure,
			TTL:    cfg.SessionTTL,
		},
		AllowedOrigins: cfg.AllowedOrigins,
	})

	r := routes.SetupRouter(ctl, gate, routes.Options{
		CookieName: cfg.SessionCookie,
		AccessLog:  accessLog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.EnableCORS(r, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	logrus.Info("Server stopped.")
}
