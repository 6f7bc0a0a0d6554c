package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to the local user projection
type UserRepository interface {
	// FindByID returns the user or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIdentifier resolves a user by email or, failing that, by
	// username. Returns shared.ErrNotFound when neither matches.
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)

	// FindByIDs returns the users that exist for the given IDs; missing
	// IDs are skipped, not errors
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)

	// Save creates or updates a user projection
	Save(ctx context.Context, u *User) error

	// Delete removes a user projection. Deleting an absent user is not
	// an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
