package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

func newAuction(t *testing.T) *domain.Auction {
	t.Helper()
	now := time.Now().UTC()
	a, err := domain.NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(100),
		now.Add(-time.Hour), now.Add(time.Hour), now)
	require.NoError(t, err)
	return a
}

func TestWithAuction_UnknownAuction(t *testing.T) {
	store := NewStore()
	err := store.WithAuction(context.Background(), uuid.New(), func(ctx context.Context, tx domain.AuctionTx) error {
		t.Fatal("fn must not run for a missing auction")
		return nil
	})
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestWithAuction_RollbackOnError(t *testing.T) {
	store := NewStore()
	a := newAuction(t)
	store.AddAuction(a)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithAuction(ctx, a.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		bid := domain.NewBid(uuid.New(), a.ID, uuid.New(), decimal.NewFromInt(200), time.Now().UTC())
		require.NoError(t, tx.AppendBid(ctx, bid))
		require.NoError(t, tx.UpdateStatus(ctx, domain.StatusEnded))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// nothing staged may leak out of a failed unit
	bids, err := store.ListByAuction(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
	got, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOngoing, got.Status)
}

func TestWithAuction_StagedBidVisibleToHighest(t *testing.T) {
	store := NewStore()
	a := newAuction(t)
	store.AddAuction(a)
	ctx := context.Background()

	err := store.WithAuction(ctx, a.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		bid := domain.NewBid(uuid.New(), a.ID, uuid.New(), decimal.NewFromInt(300), time.Now().UTC())
		require.NoError(t, tx.AppendBid(ctx, bid))

		// an uncommitted append is already observed inside its own unit
		top, err := tx.HighestBid(ctx)
		require.NoError(t, err)
		require.NotNil(t, top)
		require.True(t, top.Amount.Equal(decimal.NewFromInt(300)))
		return nil
	})
	require.NoError(t, err)
}

func TestSaveResult_OnlyOnce(t *testing.T) {
	store := NewStore()
	a := newAuction(t)
	store.AddAuction(a)
	ctx := context.Background()

	winner := uuid.New()
	result := &domain.AuctionResult{AuctionID: a.ID, WinnerID: winner, FinalPrice: decimal.NewFromInt(500), DecidedAt: time.Now().UTC()}

	require.NoError(t, store.WithAuction(ctx, a.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		return tx.SaveResult(ctx, result)
	}))

	err := store.WithAuction(ctx, a.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		return tx.SaveResult(ctx, result)
	})
	require.ErrorIs(t, err, domain.ErrResultExists)

	got, ok := store.Result(a.ID)
	require.True(t, ok)
	require.Equal(t, winner, got.WinnerID)
}
