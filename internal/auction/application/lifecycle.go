package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// LifecycleResolver applies time-based state transitions to auctions and, on
// close, computes and persists the winner. It is the sole writer of auction
// status and of AuctionResult rows.
type LifecycleResolver struct {
	store    domain.Store
	auctions domain.AuctionRepository
}

// NewLifecycleResolver creates a new instance of LifecycleResolver.
func NewLifecycleResolver(store domain.Store, auctions domain.AuctionRepository) *LifecycleResolver {
	return &LifecycleResolver{
		store:    store,
		auctions: auctions,
	}
}

// ResolveAll re-evaluates every not-yet-ended auction against 'now'. One
// auction's failure is logged and skipped, it never blocks the rest of the
// pass; the next tick retries it. The whole pass is idempotent, running it
// twice in a row leaves the same end state.
func (r *LifecycleResolver) ResolveAll(ctx context.Context, now time.Time) error {
	auctions, err := r.auctions.ListUnfinished(ctx)
	if err != nil {
		return fmt.Errorf("lifecycle: list unfinished auctions: %w", err)
	}

	var failed int
	for _, a := range auctions {
		if err := r.ResolveOne(ctx, a.ID, now); err != nil {
			failed++
			log.Error("Lifecycle: failed to resolve auction",
				zap.String("auctionID", a.ID.String()),
				zap.Error(err),
			)
		}
	}
	if failed > 0 {
		return fmt.Errorf("lifecycle: %d of %d auctions failed to resolve", failed, len(auctions))
	}
	return nil
}

// ResolveOne applies the transitions due for a single auction at 'now'
// inside its atomic unit. Both transitions may fire in one pass when the
// auction was only observed after a long interval, but never out of order:
// future -> ongoing -> ended. The winner computation happens in the same
// unit as the status write, so it can neither miss a committed bid nor race
// an in-flight admission.
func (r *LifecycleResolver) ResolveOne(ctx context.Context, auctionID uuid.UUID, now time.Time) error {
	return r.store.WithAuction(ctx, auctionID, func(ctx context.Context, tx domain.AuctionTx) error {
		auction := tx.Auction()

		if auction.BeginOngoing(now) {
			if err := tx.UpdateStatus(ctx, domain.StatusOngoing); err != nil {
				return fmt.Errorf("open auction: %w", err)
			}
			log.Info("Lifecycle: auction opened",
				zap.String("auctionID", auction.ID.String()),
				zap.Time("endTime", auction.EndTime),
			)
		}

		if !auction.End(now) {
			return nil
		}
		if err := tx.UpdateStatus(ctx, domain.StatusEnded); err != nil {
			return fmt.Errorf("close auction: %w", err)
		}

		top, err := tx.HighestBid(ctx)
		if err != nil {
			return fmt.Errorf("read highest bid at close: %w", err)
		}
		if top == nil {
			// zero bids: the auction ends unsold, no result row is written
			log.Info("Lifecycle: auction closed without bids",
				zap.String("auctionID", auction.ID.String()),
			)
			return nil
		}

		result := &domain.AuctionResult{
			AuctionID:  auction.ID,
			WinnerID:   top.BidderID,
			FinalPrice: top.Amount,
			DecidedAt:  now,
		}
		if err := tx.SaveResult(ctx, result); err != nil {
			return fmt.Errorf("save auction result: %w", err)
		}
		log.Info("Lifecycle: auction closed",
			zap.String("auctionID", auction.ID.String()),
			zap.String("winnerID", result.WinnerID.String()),
			zap.String("finalPrice", result.FinalPrice.String()),
		)
		return nil
	})
}
