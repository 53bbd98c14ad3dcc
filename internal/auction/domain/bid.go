package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid is one offer against an auction. Bids are append-only: once written
// they are never updated or deleted, they are the audit trail the winner
// computation reads from.
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    decimal.Decimal
	PlacedAt  time.Time
}

// NewBid creates a new Bid instance
func NewBid(id, auctionID, bidderID uuid.UUID, amount decimal.Decimal, placedAt time.Time) *Bid {
	return &Bid{
		ID:        id,
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  placedAt,
	}
}
