package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewAuction_StatusDerivation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		startTime  time.Time
		endTime    time.Time
		wantStatus AuctionStatus
	}{
		{
			name:       "starts_in_future",
			startTime:  now.Add(time.Hour),
			endTime:    now.Add(2 * time.Hour),
			wantStatus: StatusFuture,
		},
		{
			name:       "already_running",
			startTime:  now.Add(-time.Hour),
			endTime:    now.Add(time.Hour),
			wantStatus: StatusOngoing,
		},
		{
			name:       "starts_exactly_now",
			startTime:  now,
			endTime:    now.Add(time.Hour),
			wantStatus: StatusOngoing,
		},
		{
			name:       "window_already_passed",
			startTime:  now.Add(-2 * time.Hour),
			endTime:    now.Add(-time.Hour),
			wantStatus: StatusEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(100), tt.startTime, tt.endTime, now)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, a.Status)
		})
	}
}

func TestNewAuction_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(100), now.Add(time.Hour), now.Add(time.Hour), now)
	require.ErrorIs(t, err, ErrInvalidTimeWindow)

	_, err = NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(100), now.Add(2*time.Hour), now.Add(time.Hour), now)
	require.ErrorIs(t, err, ErrInvalidTimeWindow)

	_, err = NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(-1), now, now.Add(time.Hour), now)
	require.ErrorIs(t, err, ErrInvalidAmount)

	// zero start price is allowed
	_, err = NewAuction(uuid.New(), uuid.New(), decimal.Zero, now, now.Add(time.Hour), now)
	require.NoError(t, err)
}

func TestAuction_TransitionsNeverRegress(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(50), now.Add(time.Minute), now.Add(time.Hour), now)
	require.NoError(t, err)
	require.Equal(t, StatusFuture, a.Status)

	// too early, nothing happens
	require.False(t, a.BeginOngoing(now))
	require.False(t, a.End(now))
	require.Equal(t, StatusFuture, a.Status)

	// start threshold crossed
	require.True(t, a.BeginOngoing(now.Add(time.Minute)))
	require.Equal(t, StatusOngoing, a.Status)

	// reapplying is a no-op
	require.False(t, a.BeginOngoing(now.Add(2*time.Minute)))

	// end threshold crossed
	require.True(t, a.End(now.Add(time.Hour)))
	require.Equal(t, StatusEnded, a.Status)

	// ended is terminal, repeated and out-of-order ticks change nothing
	require.False(t, a.End(now.Add(2*time.Hour)))
	require.False(t, a.BeginOngoing(now.Add(2*time.Hour)))
	require.False(t, a.BeginOngoing(now))
	require.Equal(t, StatusEnded, a.Status)
}

func TestAuction_EndRequiresOngoing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(50), now.Add(time.Minute), now.Add(2*time.Minute), now)
	require.NoError(t, err)

	// both thresholds crossed in one observation: End alone must not skip
	// the ongoing stage
	late := now.Add(time.Hour)
	require.False(t, a.End(late))
	require.Equal(t, StatusFuture, a.Status)

	require.True(t, a.BeginOngoing(late))
	require.True(t, a.End(late))
	require.Equal(t, StatusEnded, a.Status)
}

func TestAuction_OpenForBidding(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(50), now.Add(-time.Hour), now.Add(time.Hour), now)
	require.NoError(t, err)
	require.Equal(t, StatusOngoing, a.Status)

	require.True(t, a.OpenForBidding(now))
	require.True(t, a.OpenForBidding(a.StartTime))
	// boundary: a bid at exactly end time loses to the close
	require.False(t, a.OpenForBidding(a.EndTime))
	require.False(t, a.OpenForBidding(a.EndTime.Add(time.Second)))

	// persisted status wins over the clock
	a.Status = StatusEnded
	require.False(t, a.OpenForBidding(now))
}

func TestAuction_CurrentHighest(t *testing.T) {
	now := time.Now().UTC()
	a, err := NewAuction(uuid.New(), uuid.New(), decimal.NewFromInt(1000), now.Add(-time.Hour), now.Add(time.Hour), now)
	require.NoError(t, err)

	// no bids: current highest is the start price, never a null
	require.True(t, a.CurrentHighest(nil).Equal(decimal.NewFromInt(1000)))

	top := NewBid(uuid.New(), a.ID, uuid.New(), decimal.NewFromInt(1500), now)
	require.True(t, a.CurrentHighest(top).Equal(decimal.NewFromInt(1500)))
}
