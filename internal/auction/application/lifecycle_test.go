package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/auction/infra/repository/memory"
)

func TestLifecycleResolver_Transitions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	a := seedAuction(t, store, 100, now.Add(10*time.Minute), now.Add(time.Hour), now)
	require.Equal(t, domain.StatusFuture, a.Status)

	// before start: nothing moves
	require.NoError(t, resolver.ResolveAll(ctx, now))
	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFuture, got.Status)

	// past start: future -> ongoing
	require.NoError(t, resolver.ResolveAll(ctx, now.Add(10*time.Minute)))
	got, err = store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOngoing, got.Status)

	// past end: ongoing -> ended
	require.NoError(t, resolver.ResolveAll(ctx, now.Add(time.Hour)))
	got, err = store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)
}

func TestLifecycleResolver_IdempotentAndMonotonic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	a := seedAuction(t, store, 100, now.Add(-2*time.Hour), now.Add(-time.Hour), now.Add(-90*time.Minute))
	require.Equal(t, domain.StatusOngoing, a.Status)

	// two immediate passes end in the same state as one
	require.NoError(t, resolver.ResolveAll(ctx, now))
	require.NoError(t, resolver.ResolveAll(ctx, now))
	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)

	// an out-of-order tick with an earlier 'now' never demotes
	require.NoError(t, resolver.ResolveOne(ctx, a.ID, now.Add(-3*time.Hour)))
	got, err = store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)
}

func TestLifecycleResolver_BothThresholdsInOnePass(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	// created as future, then observed only long after its whole window passed
	a := seedAuction(t, store, 100, now.Add(time.Minute), now.Add(2*time.Minute), now)
	require.Equal(t, domain.StatusFuture, a.Status)

	require.NoError(t, resolver.ResolveOne(ctx, a.ID, now.Add(time.Hour)))
	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)
}

func TestLifecycleResolver_ZeroBidClose_NoResult(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	a := seedAuction(t, store, 100, now.Add(-time.Hour), now.Add(time.Hour), now)

	require.NoError(t, resolver.ResolveAll(ctx, now.Add(time.Hour)))
	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)

	_, ok := store.Result(a.ID)
	require.False(t, ok, "an unsold auction must not get a result row")
}

func TestLifecycleResolver_FailureDoesNotBlockOtherAuctions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	healthy := seedAuction(t, store, 100, now.Add(-time.Hour), now.Add(-time.Minute), now.Add(-time.Hour))

	// a result written out-of-band makes this auction's close fail
	broken := seedAuction(t, store, 100, now.Add(-time.Hour), now.Add(-time.Minute), now.Add(-time.Hour))
	bidder := uuid.New()
	store.AddBidder(bidder)
	require.NoError(t, store.WithAuction(ctx, broken.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		if err := tx.AppendBid(ctx, domain.NewBid(uuid.New(), broken.ID, bidder, decimal.NewFromInt(200), now)); err != nil {
			return err
		}
		return tx.SaveResult(ctx, &domain.AuctionResult{AuctionID: broken.ID, WinnerID: bidder, FinalPrice: decimal.NewFromInt(200), DecidedAt: now})
	}))

	err := resolver.ResolveAll(ctx, now)
	require.Error(t, err)

	// the healthy auction still transitioned on the same tick
	got, err := store.GetByID(ctx, healthy.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)
}

func TestAuctionLifecycle_EndToEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := newManualClock(now)
	store := memory.NewStore()

	bidderA, bidderB := uuid.New(), uuid.New()
	store.AddBidder(bidderA)
	store.AddBidder(bidderB)

	auction := seedAuction(t, store, 1000, now.Add(-time.Hour), now.Add(time.Hour), now)
	require.Equal(t, domain.StatusOngoing, auction.Status)

	placeBid := NewPlaceBidUseCase(store, store, clock)
	resolver := NewLifecycleResolver(store, store)
	ctx := context.Background()

	bidA, err := placeBid.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, BidderID: bidderA, Amount: decimal.NewFromInt(1500)})
	require.NoError(t, err)

	_, err = placeBid.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, BidderID: bidderB, Amount: decimal.NewFromInt(1200)})
	require.ErrorIs(t, err, domain.ErrBidTooLow)
	var tooLow *domain.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.True(t, tooLow.Highest.Equal(decimal.NewFromInt(1500)))

	clock.Advance(2 * time.Hour)
	require.NoError(t, resolver.ResolveAll(ctx, clock.Now()))

	got, err := store.GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, got.Status)

	result, ok := store.Result(auction.ID)
	require.True(t, ok)
	require.Equal(t, bidderA, result.WinnerID)
	require.True(t, result.FinalPrice.Equal(decimal.NewFromInt(1500)))
	require.Equal(t, bidA.BidderID, result.WinnerID)

	// the auction is closed for good
	_, err = placeBid.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, BidderID: bidderB, Amount: decimal.NewFromInt(2000)})
	require.ErrorIs(t, err, domain.ErrAuctionNotOpen)
}

func TestBidRacingClose_OneConsistentOutcome(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	endTime := base.Add(time.Hour)

	for i := 0; i < 25; i++ {
		store := memory.NewStore()
		bidder := uuid.New()
		store.AddBidder(bidder)
		auction := seedAuction(t, store, 100, base, endTime, base)

		// the bid arrives a breath before the boundary, the close fires at it
		placeBid := NewPlaceBidUseCase(store, store, newManualClock(endTime.Add(-time.Millisecond)))
		resolver := NewLifecycleResolver(store, store)
		ctx := context.Background()

		var wg sync.WaitGroup
		var bidErr, closeErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, bidErr = placeBid.Execute(ctx, PlaceBidDTO{AuctionID: auction.ID, BidderID: bidder, Amount: decimal.NewFromInt(500)})
		}()
		go func() {
			defer wg.Done()
			closeErr = resolver.ResolveOne(ctx, auction.ID, endTime)
		}()
		wg.Wait()

		require.NoError(t, closeErr)
		got, err := store.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusEnded, got.Status)

		result, hasResult := store.Result(auction.ID)
		if bidErr == nil {
			// admitted before the close committed: it must be the winner
			require.True(t, hasResult)
			require.Equal(t, bidder, result.WinnerID)
			require.True(t, result.FinalPrice.Equal(decimal.NewFromInt(500)))
		} else {
			// closed first: the bid is rejected and leaves no trace
			require.ErrorIs(t, bidErr, domain.ErrAuctionNotOpen)
			require.False(t, hasResult)
			bids, err := store.ListByAuction(ctx, auction.ID)
			require.NoError(t, err)
			require.Empty(t, bids)
		}
	}
}
