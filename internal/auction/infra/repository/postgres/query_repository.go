package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// QueryRepository implements domain.AuctionQueries. The current highest bid
// is aggregated from the ledger on every read (MAX over bids, falling back
// to the start price) rather than kept as a denormalized column, so there is
// a single source of truth.
type QueryRepository struct {
	pool *pgxpool.Pool
}

// NewQueryRepository creates a new instance of QueryRepository.
func NewQueryRepository(pool *pgxpool.Pool) *QueryRepository {
	return &QueryRepository{pool: pool}
}

const summaryColumns = `
        auctions.id,
        artworks.title,
        artworks.image_url,
        COALESCE(MAX(bids.amount), auctions.start_price) AS highest_bid,
        auctions.start_time,
        auctions.end_time,
        auctions.status
    FROM auctions
    JOIN artworks ON auctions.artwork_id = artworks.id
    LEFT JOIN bids ON auctions.id = bids.auction_id
`

const summaryGroupBy = `
    GROUP BY auctions.id, artworks.title, artworks.image_url,
             auctions.start_price, auctions.start_time, auctions.end_time, auctions.status
`

// Trending lists ongoing auctions by current highest bid, descending.
func (r *QueryRepository) Trending(ctx context.Context, limit int) ([]domain.AuctionSummary, error) {
	query := `SELECT` + summaryColumns + `
        WHERE auctions.status = 'ongoing'` + summaryGroupBy + `
        ORDER BY highest_bid DESC
        LIMIT $1
    `
	return r.listSummaries(ctx, "query trending auctions", query, limit)
}

// Newest lists ongoing auctions by start time, most recent first.
func (r *QueryRepository) Newest(ctx context.Context, limit int) ([]domain.AuctionSummary, error) {
	query := `SELECT` + summaryColumns + `
        WHERE auctions.status = 'ongoing'` + summaryGroupBy + `
        ORDER BY auctions.start_time DESC
        LIMIT $1
    `
	return r.listSummaries(ctx, "query newest auctions", query, limit)
}

// Upcoming lists future auctions by start time, soonest first.
func (r *QueryRepository) Upcoming(ctx context.Context, limit int) ([]domain.AuctionSummary, error) {
	query := `SELECT` + summaryColumns + `
        WHERE auctions.status = 'future'` + summaryGroupBy + `
        ORDER BY auctions.start_time ASC
        LIMIT $1
    `
	return r.listSummaries(ctx, "query upcoming auctions", query, limit)
}

func (r *QueryRepository) listSummaries(ctx context.Context, op, query string, limit int) ([]domain.AuctionSummary, error) {
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	summaries := make([]domain.AuctionSummary, 0, limit)
	for rows.Next() {
		var s domain.AuctionSummary
		err := rows.Scan(
			&s.AuctionID,
			&s.ArtworkTitle,
			&s.ImageURL,
			&s.HighestBid,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
		)
		if err != nil {
			return nil, mapError(op, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return summaries, nil
}

// Detail returns the single-auction view, any status.
func (r *QueryRepository) Detail(ctx context.Context, auctionID uuid.UUID) (*domain.AuctionDetail, error) {
	query := `
        SELECT
            auctions.id,
            artworks.id,
            artworks.title,
            artworks.image_url,
            users.name,
            auctions.start_price,
            COALESCE(MAX(bids.amount), auctions.start_price) AS highest_bid,
            auctions.start_time,
            auctions.end_time,
            auctions.status
        FROM auctions
        JOIN artworks ON auctions.artwork_id = artworks.id
        JOIN users ON artworks.artist_id = users.id
        LEFT JOIN bids ON auctions.id = bids.auction_id
        WHERE auctions.id = $1
        GROUP BY auctions.id, artworks.id, artworks.title, artworks.image_url, users.name,
                 auctions.start_price, auctions.start_time, auctions.end_time, auctions.status
    `
	detail := &domain.AuctionDetail{}
	err := r.pool.QueryRow(ctx, query, auctionID).Scan(
		&detail.AuctionID,
		&detail.ArtworkID,
		&detail.ArtworkTitle,
		&detail.ImageURL,
		&detail.ArtistName,
		&detail.StartPrice,
		&detail.HighestBid,
		&detail.StartTime,
		&detail.EndTime,
		&detail.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, mapError("query auction detail", err)
	}
	return detail, nil
}

// WonBy lists the auctions a bidder has won, most recent first.
func (r *QueryRepository) WonBy(ctx context.Context, bidderID uuid.UUID) ([]domain.WonAuction, error) {
	query := `
        SELECT
            auction_results.auction_id,
            artworks.title,
            artworks.image_url,
            auctions.start_price,
            auction_results.final_price,
            auction_results.decided_at
        FROM auction_results
        JOIN auctions ON auction_results.auction_id = auctions.id
        JOIN artworks ON auctions.artwork_id = artworks.id
        WHERE auction_results.winner_id = $1
        ORDER BY auction_results.decided_at DESC
    `
	rows, err := r.pool.Query(ctx, query, bidderID)
	if err != nil {
		return nil, mapError("query auctions won", err)
	}
	defer rows.Close()

	var won []domain.WonAuction
	for rows.Next() {
		var w domain.WonAuction
		err := rows.Scan(
			&w.AuctionID,
			&w.ArtworkTitle,
			&w.ImageURL,
			&w.StartPrice,
			&w.FinalPrice,
			&w.DecidedAt,
		)
		if err != nil {
			return nil, mapError("query auctions won", err)
		}
		won = append(won, w)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("query auctions won", err)
	}
	return won, nil
}
