package repo

import (
	"context"
	"errors"
	"time"

	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/security"
)

// EnsureSeedUser creates a bootstrap account at startup if one is
// configured. An already-existing username is fine and not an error.
func EnsureSeedUser(ctx context.Context, users Users, username, password string, role user.Role) error {
	if username == "" || password == "" {
		return nil
	}

	if !role.Valid() {
		role = user.RoleProvider
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	u := user.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil
		}
		return err
	}

	return nil
}
