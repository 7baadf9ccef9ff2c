package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"transport_booking/internal/logger"
	"transport_booking/internal/store"
	"transport_booking/internal/store/memory"
	"transport_booking/internal/store/mongo"
	"transport_booking/internal/store/postgres"
)

// OpenStore picks the storage backend from the URL scheme of databaseURL.
func OpenStore(ctx context.Context, databaseURL string) (store.Store, error) {
	scheme, _, _ := strings.Cut(databaseURL, "://")
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		s, err := postgres.Open(databaseURL, logger.GormLogger())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logrus.Info("Connected to PostgreSQL")
		return s, nil
	case "mongodb", "mongodb+srv":
		s, err := mongo.Open(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logrus.Info("Connected to MongoDB")
		return s, nil
	case "memory":
		logrus.Warn("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", scheme)
	}
}
