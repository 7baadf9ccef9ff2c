// Package identity resolves login credentials to users and seeds the admin
// account.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"transport_booking/internal/models"
	"transport_booking/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnrecognizedRole   = errors.New("unrecognized role")
)

const (
	AdminUserID     = "admin"
	adminName       = "Admin"
	adminDepartment = "Administration"
	// well-known bootstrap password, compared as plaintext like every other
	adminPassword = "123"
)

type Service struct {
	users store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

// Authenticate returns the user whose stored password equals password byte
// for byte. Unknown users and wrong passwords both yield
// ErrInvalidCredentials; storage failures come back wrapping
// store.ErrUnavailable.
func (s *Service) Authenticate(ctx context.Context, userID, password string) (models.User, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("authenticate %q: %w", userID, err)
	}
	if user.Password != password {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: %q", ErrUnrecognizedRole, user.Role)
	}
	return user, nil
}

// EnsureAdminSeed creates the admin account if it is missing. A concurrent
// seeder winning the insert counts as success. created reports whether this
// call wrote the record.
func (s *Service) EnsureAdminSeed(ctx context.Context) (created bool, err error) {
	existing, err := s.users.FindUser(ctx, AdminUserID)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			logrus.WithField("role", existing.Role).Warn("Admin user exists with a non-admin role")
		}
		logrus.Info("Admin user already exists")
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, fmt.Errorf("check admin user: %w", err)
	}

	admin := models.User{
		UserID:     AdminUserID,
		Name:       adminName,
		Role:       models.RoleAdmin,
		Department: adminDepartment,
		Password:   adminPassword,
	}
	if err := s.users.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			logrus.Info("Admin user already exists")
			return false, nil
		}
		return false, fmt.Errorf("create admin user: %w", err)
	}
	logrus.Info("Admin user created")
	return true, nil
}
