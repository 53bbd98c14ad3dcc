package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionResult records the winner of a closed auction: the bidder holding
// the maximum-amount bid at the instant the ongoing->ended transition
// committed. At most one result exists per auction, written exactly once by
// the lifecycle resolver. An auction that closes with zero bids gets no
// result row at all.
type AuctionResult struct {
	AuctionID  uuid.UUID
	WinnerID   uuid.UUID
	FinalPrice decimal.Decimal
	DecidedAt  time.Time
}
