package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/shared/logger"
)

var log = logger.GetLogger()

const (
	// maxBidAttempts bounds the automatic retries on ErrConflict. Every other
	// error class surfaces immediately.
	maxBidAttempts = 3
	retryBackoff   = 25 * time.Millisecond
)

// PlaceBidDTO is the input for the place-bid use case.
type PlaceBidDTO struct {
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    decimal.Decimal
}

// PlaceBidUseCase admits bids against the ledger. Validation and the append
// run inside one per-auction atomic unit, so two bids racing for the same
// auction can never both pass against a stale highest-bid snapshot.
type PlaceBidUseCase struct {
	store   domain.Store
	bidders domain.BidderResolver
	clock   domain.Clock
}

// NewPlaceBidUseCase creates a new instance of PlaceBidUseCase, it receives
// its dependencies through injection.
func NewPlaceBidUseCase(store domain.Store, bidders domain.BidderResolver, clock domain.Clock) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		store:   store,
		bidders: bidders,
		clock:   clock,
	}
}

// Execute validates and records a bid. On success it returns the stored bid;
// on failure the ledger is untouched and the caller gets a typed rejection.
// Transient conflicts on the per-auction unit are retried with backoff, the
// retried admission re-validates against the latest highest bid.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	if !cmd.Amount.IsPositive() {
		log.Warn("PlaceBid: invalid bid amount",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.String("bidderID", cmd.BidderID.String()),
			zap.String("amount", cmd.Amount.String()),
		)
		return nil, domain.ErrInvalidAmount
	}

	var (
		bid *domain.Bid
		err error
	)
	for attempt := 1; attempt <= maxBidAttempts; attempt++ {
		bid, err = uc.attempt(ctx, cmd)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return bid, err
		}
		log.Warn("PlaceBid: conflict on auction unit, retrying",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return nil, fmt.Errorf("place bid: retries exhausted for auction %s: %w", cmd.AuctionID, err)
}

func (uc *PlaceBidUseCase) attempt(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	var placed *domain.Bid

	err := uc.store.WithAuction(ctx, cmd.AuctionID, func(ctx context.Context, tx domain.AuctionTx) error {
		auction := tx.Auction()
		now := uc.clock.Now()

		if !auction.OpenForBidding(now) {
			log.Warn("PlaceBid: rejected, auction not open",
				zap.String("auctionID", auction.ID.String()),
				zap.String("status", string(auction.Status)),
				zap.String("bidderID", cmd.BidderID.String()),
			)
			return domain.ErrAuctionNotOpen
		}

		top, err := tx.HighestBid(ctx)
		if err != nil {
			return fmt.Errorf("read highest bid: %w", err)
		}
		highest := auction.CurrentHighest(top)
		// strict ">" only: equal amounts never both win
		if !cmd.Amount.GreaterThan(highest) {
			log.Warn("PlaceBid: rejected, amount too low",
				zap.String("auctionID", auction.ID.String()),
				zap.String("amount", cmd.Amount.String()),
				zap.String("currentHighest", highest.String()),
				zap.String("bidderID", cmd.BidderID.String()),
			)
			return &domain.BidTooLowError{Highest: highest}
		}

		if err := uc.bidders.Resolve(ctx, cmd.BidderID); err != nil {
			return fmt.Errorf("resolve bidder %s: %w", cmd.BidderID, err)
		}

		bid := domain.NewBid(uuid.New(), auction.ID, cmd.BidderID, cmd.Amount, now)
		if err := tx.AppendBid(ctx, bid); err != nil {
			return fmt.Errorf("append bid: %w", err)
		}
		placed = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("PlaceBid: bid admitted",
		zap.String("auctionID", placed.AuctionID.String()),
		zap.String("bidID", placed.ID.String()),
		zap.String("bidderID", placed.BidderID.String()),
		zap.String("amount", placed.Amount.String()),
	)
	return placed, nil
}
