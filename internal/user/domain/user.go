package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// User is an authenticated participant: artists list artworks, bidders place
// bids. Credential verification happens upstream of this core, the email is
// the stable key the identity layer hands over.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// UserRepository resolves user identities.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
