package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/config"
	"github.com/campusplace/backend/internal/db"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

// CreateDefaultAdmin creates the bootstrap ADMIN account if no account with
// the configured email exists. Without it a fresh deployment has no way to
// create staff accounts.
func CreateDefaultAdmin(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("Seed admin email or password not configured - skipping default admin creation")
		return nil
	}

	userRepo := repositories.NewUserRepository(database)

	_, err := userRepo.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check for existing admin account: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:            cfg.Seed.AdminEmail,
		Password:         string(hashedPassword),
		FirstName:        "Placement",
		LastName:         "Admin",
		RoleType:         models.RoleAdmin,
		IsEnabled:        true,
		ProfileCompleted: true,
	}

	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin account: %w", err)
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Default admin account created")
	return nil
}
