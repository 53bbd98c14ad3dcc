package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	auctiondomain "github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/user/domain"
)

// UserRepository implements domain.UserRepository for PostgreSQL. It also
// serves as the bidding engine's BidderResolver.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByEmail resolves the authenticated principal's email to a user.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email FROM users WHERE email = $1`

	user := &domain.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, &auctiondomain.StorageError{Op: "get user by email", Err: err}
	}
	return user, nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email FROM users WHERE id = $1`

	user := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, &auctiondomain.StorageError{Op: "get user by id", Err: err}
	}
	return user, nil
}

// Resolve implements the auction module's BidderResolver: it only checks
// that the bidder identity exists.
func (r *UserRepository) Resolve(ctx context.Context, bidderID uuid.UUID) error {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, bidderID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auctiondomain.ErrBidderNotFound
		}
		return &auctiondomain.StorageError{Op: "resolve bidder", Err: err}
	}
	return nil
}
