package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionStatus represents the lifecycle stage of an auction
type AuctionStatus string

const (
	StatusFuture  AuctionStatus = "future"
	StatusOngoing AuctionStatus = "ongoing"
	StatusEnded   AuctionStatus = "ended"
)

// Auction is a timed sale event for one artwork. Status is derived from
// wall-clock time but persisted for query efficiency; it only ever moves
// forward (future -> ongoing -> ended), never back.
type Auction struct {
	ID         uuid.UUID
	ArtworkID  uuid.UUID
	StartPrice decimal.Decimal
	StartTime  time.Time
	EndTime    time.Time
	Status     AuctionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAuction builds an auction for an artwork. The initial status depends on
// where 'now' falls in the [startTime, endTime) window, so an auction created
// with a past start time opens immediately.
func NewAuction(id, artworkID uuid.UUID, startPrice decimal.Decimal, startTime, endTime time.Time, now time.Time) (*Auction, error) {
	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeWindow
	}
	if startPrice.IsNegative() {
		return nil, ErrInvalidAmount
	}

	status := StatusFuture
	if !now.Before(endTime) {
		status = StatusEnded
	} else if !now.Before(startTime) {
		status = StatusOngoing
	}

	return &Auction{
		ID:         id,
		ArtworkID:  artworkID,
		StartPrice: startPrice,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     status,
	}, nil
}

// BeginOngoing applies the future->ongoing transition if it is due at 'now'.
// Returns true when the status changed. Calling it on an ongoing or ended
// auction is a no-op.
func (a *Auction) BeginOngoing(now time.Time) bool {
	if a.Status != StatusFuture || now.Before(a.StartTime) {
		return false
	}
	a.Status = StatusOngoing
	return true
}

// End applies the ongoing->ended transition if it is due at 'now'.
// Returns true when the status changed. Never demotes: an already ended
// auction stays ended, a future auction must pass through ongoing first.
func (a *Auction) End(now time.Time) bool {
	if a.Status != StatusOngoing || now.Before(a.EndTime) {
		return false
	}
	a.Status = StatusEnded
	return true
}

// OpenForBidding reports whether a bid can be admitted at 'now'. The persisted
// status must be ongoing AND 'now' must sit inside the auction window, so a
// bid racing the close at now == EndTime is always rejected even if the
// lifecycle tick has not fired yet.
func (a *Auction) OpenForBidding(now time.Time) bool {
	return a.Status == StatusOngoing && !now.Before(a.StartTime) && now.Before(a.EndTime)
}

// CurrentHighest returns the amount a new bid has to beat: the top bid's
// amount, or the start price when no bid exists yet. Never a zero value the
// caller has to special-case.
func (a *Auction) CurrentHighest(topBid *Bid) decimal.Decimal {
	if topBid == nil {
		return a.StartPrice
	}
	return topBid.Amount
}
