package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Clock abstracts wall-clock time so state transitions stay deterministic
// under test. Production wiring passes SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// AuctionTx is the set of operations available inside one per-auction atomic
// unit. The auction row plus its bid slice form a single unit of mutual
// exclusion: everything done through an AuctionTx commits or rolls back
// together, serialized against any other writer of the same auction.
type AuctionTx interface {
	// Auction returns the locked auction row. Mutations made to it are
	// not persisted unless UpdateStatus is called.
	Auction() *Auction
	// HighestBid returns the maximum-amount bid for this auction, or nil
	// when the ledger holds no bids yet.
	HighestBid(ctx context.Context) (*Bid, error)
	// AppendBid writes a new ledger entry. The ledger is append-only.
	AppendBid(ctx context.Context, bid *Bid) error
	// UpdateStatus persists a lifecycle transition for this auction.
	UpdateStatus(ctx context.Context, status AuctionStatus) error
	// SaveResult records the winner. Fails with ErrResultExists if a result
	// was already written for this auction.
	SaveResult(ctx context.Context, result *AuctionResult) error
}

// Store opens per-auction atomic units. WithAuction acquires exclusive
// access to the auction identified by id, runs fn, and commits if fn returns
// nil, otherwise rolls everything back. Returns ErrAuctionNotFound when no
// such auction exists and ErrConflict when the unit could not be acquired.
type Store interface {
	WithAuction(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx AuctionTx) error) error
}

// AuctionRepository is the read side of the auction store used outside the
// per-auction unit.
type AuctionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	// ListUnfinished returns every auction whose status is not yet ended,
	// the working set of a lifecycle tick.
	ListUnfinished(ctx context.Context) ([]*Auction, error)
}

// AuctionCreator persists a new auction row inside a caller-managed
// transaction, so artwork and auction creation commit together.
type AuctionCreator interface {
	Create(ctx context.Context, tx pgx.Tx, auction *Auction) error
}

// BidRepository is the read side of the bid ledger.
type BidRepository interface {
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*Bid, error)
}

// BidderResolver checks that a bidder identity exists. Credential
// verification happens upstream; the bidding engine only needs the identity
// to be resolvable.
type BidderResolver interface {
	Resolve(ctx context.Context, bidderID uuid.UUID) error
}
