// api/db/seed.go
package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/config"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

// userCreator is the slice of the user directory the seeder needs.
type userCreator interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user model.User) (string, error)
}

// SeedSuperAdmin creates the bootstrap super admin account if it does not
// already exist. Safe to run on every startup.
func SeedSuperAdmin(ctx context.Context, users userCreator, admin config.AdminConfiguration) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Warn("Super admin seed skipped: admin credentials not configured")
		return nil
	}

	existing, err := users.GetUserByEmail(ctx, admin.Email)
	if err != nil && !errors.Is(err, app_errors.ErrUserNotFound) {
		return fmt.Errorf("failed to probe for super admin: %w", err)
	}
	if existing != nil {
		logger.Info("Super admin already present", zap.String("email", admin.Email))
		return nil
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	id, err := users.CreateUser(ctx, model.User{
		Email:     admin.Email,
		Password:  hashed,
		FirstName: "Super",
		LastName:  "Admin",
		Role:      model.RoleSuperAdmin,
		Status:    model.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	logger.Info("Super admin seeded", zap.String("userID", id), zap.String("email", admin.Email))
	return nil
}
