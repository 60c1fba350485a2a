package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeed describes the administrator account created on first start
type AdminSeed struct {
	Username string
	Password string
	FullName string
}

// EnsureAdmin creates the seed administrator when no user has its username.
// An existing account is never modified. It reports whether a user was created.
func EnsureAdmin(ctx context.Context, userRepo user.UserRepository, seed AdminSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		slog.Info("Admin seed not configured, skipping")
		return false, nil
	}

	_, err := userRepo.GetByUsername(ctx, seed.Username)
	if err == nil {
		slog.Debug("Admin seed already present", "username", seed.Username)
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin seed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	fullName := seed.FullName
	if fullName == "" {
		fullName = "Administrator"
	}

	created, err := userRepo.Create(ctx, user.User{
		Username:     seed.Username,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	})
	if err != nil {
		// Another instance seeded it first
		if errors.Is(err, user.ErrUsernameExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin seed: %w", err)
	}

	slog.Info("Admin seed created", "user_id", created.ID, "username", created.Username)
	return true, nil
}
