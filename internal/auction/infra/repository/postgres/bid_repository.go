package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// BidRepository implements domain.BidRepository for PostgreSQL. Writes go
// through the Store's AuctionTx only; this type is read-only.
type BidRepository struct {
	pool *pgxpool.Pool
}

// NewBidRepository creates a new instance of BidRepository.
func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

// ListByAuction returns the full ledger for an auction in placement order.
func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder_id, amount, placed_at
        FROM bids
        WHERE auction_id = $1
        ORDER BY placed_at ASC, id ASC
    `
	rows, err := r.pool.Query(ctx, query, auctionID)
	if err != nil {
		return nil, mapError("list bids by auction", err)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid := &domain.Bid{}
		err := rows.Scan(
			&bid.ID,
			&bid.AuctionID,
			&bid.BidderID,
			&bid.Amount,
			&bid.PlacedAt,
		)
		if err != nil {
			return nil, mapError("scan bid", err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list bids by auction", err)
	}
	return bids, nil
}
