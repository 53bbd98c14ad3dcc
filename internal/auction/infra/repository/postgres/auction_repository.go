package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// AuctionRepository implements domain.AuctionRepository and
// domain.AuctionCreator for PostgreSQL.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

// NewAuctionRepository creates a new instance of AuctionRepository.
func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

// Create inserts a new auction row inside the caller's transaction, so it
// commits together with its artwork.
func (r *AuctionRepository) Create(ctx context.Context, tx pgx.Tx, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, artwork_id, start_price, start_time, end_time, status)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := tx.Exec(ctx, query,
		auction.ID,
		auction.ArtworkID,
		auction.StartPrice,
		auction.StartTime,
		auction.EndTime,
		auction.Status,
	)
	if err != nil {
		return mapError("create auction", err)
	}
	return nil
}

// GetByID retrieves an auction by its ID.
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, start_price, start_time, end_time, status, created_at, updated_at
        FROM auctions
        WHERE id = $1
    `
	auction := &domain.Auction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&auction.ID,
		&auction.ArtworkID,
		&auction.StartPrice,
		&auction.StartTime,
		&auction.EndTime,
		&auction.Status,
		&auction.CreatedAt,
		&auction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, mapError("get auction by id", err)
	}
	return auction, nil
}

// ListUnfinished retrieves every auction whose status is not yet ended.
func (r *AuctionRepository) ListUnfinished(ctx context.Context) ([]*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, start_price, start_time, end_time, status, created_at, updated_at
        FROM auctions
        WHERE status <> $1
        ORDER BY end_time ASC
    `
	rows, err := r.pool.Query(ctx, query, domain.StatusEnded)
	if err != nil {
		return nil, mapError("list unfinished auctions", err)
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		auction := &domain.Auction{}
		err := rows.Scan(
			&auction.ID,
			&auction.ArtworkID,
			&auction.StartPrice,
			&auction.StartTime,
			&auction.EndTime,
			&auction.Status,
			&auction.CreatedAt,
			&auction.UpdatedAt,
		)
		if err != nil {
			return nil, mapError("scan unfinished auction", err)
		}
		auctions = append(auctions, auction)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list unfinished auctions", err)
	}
	return auctions, nil
}
