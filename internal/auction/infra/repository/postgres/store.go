package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// Store implements domain.Store on PostgreSQL. The per-auction unit of
// mutual exclusion is a transaction holding a row lock on the auction:
// every writer of a given auction (bid admission, status transition, winner
// computation) queues on SELECT ... FOR UPDATE, different auctions proceed
// in parallel.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) WithAuction(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx domain.AuctionTx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapError("begin auction tx", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = mapError("commit auction tx", commitErr)
		}
	}()

	auction, err := lockAuction(ctx, tx, id)
	if err != nil {
		return err
	}

	return fn(ctx, &auctionTx{tx: tx, auction: auction})
}

// lockAuction reads the auction row under FOR UPDATE, serializing against
// every other in-flight unit for the same auction.
func lockAuction(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Auction, error) {
	query := `
        SELECT id, artwork_id, start_price, start_time, end_time, status, created_at, updated_at
        FROM auctions
        WHERE id = $1
        FOR UPDATE
    `
	auction := &domain.Auction{}
	err := tx.QueryRow(ctx, query, id).Scan(
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
		return nil, mapError("lock auction row", err)
	}
	return auction, nil
}

// auctionTx implements domain.AuctionTx over one open transaction.
type auctionTx struct {
	tx      pgx.Tx
	auction *domain.Auction
}

func (t *auctionTx) Auction() *domain.Auction { return t.auction }

func (t *auctionTx) HighestBid(ctx context.Context) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder_id, amount, placed_at
        FROM bids
        WHERE auction_id = $1
        ORDER BY amount DESC
        LIMIT 1
    `
	bid := &domain.Bid{}
	err := t.tx.QueryRow(ctx, query, t.auction.ID).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.BidderID,
		&bid.Amount,
		&bid.PlacedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("read highest bid", err)
	}
	return bid, nil
}

func (t *auctionTx) AppendBid(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, bidder_id, amount, placed_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := t.tx.Exec(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.BidderID,
		bid.Amount,
		bid.PlacedAt,
	)
	if err != nil {
		return mapError("append bid", err)
	}
	return nil
}

func (t *auctionTx) UpdateStatus(ctx context.Context, status domain.AuctionStatus) error {
	query := `
        UPDATE auctions
        SET status = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := t.tx.Exec(ctx, query, t.auction.ID, status)
	if err != nil {
		return mapError("update auction status", err)
	}
	return nil
}

func (t *auctionTx) SaveResult(ctx context.Context, result *domain.AuctionResult) error {
	query := `
        INSERT INTO auction_results (auction_id, winner_id, final_price, decided_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := t.tx.Exec(ctx, query,
		result.AuctionID,
		result.WinnerID,
		result.FinalPrice,
		result.DecidedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrResultExists
		}
		return mapError("save auction result", err)
	}
	return nil
}

// mapError classifies driver failures: lock/serialization trouble becomes
// the retryable domain.ErrConflict, everything else a StorageError.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization, deadlock, lock timeout
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		}
	}
	return &domain.StorageError{Op: op, Err: err}
}
