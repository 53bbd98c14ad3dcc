package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// PlaceBidRequest is the bid placement payload. The bidder is identified by
// the email the authentication layer resolved upstream.
type PlaceBidRequest struct {
	BidderEmail string          `json:"bidder_email"`
	Amount      decimal.Decimal `json:"amount"`
}

// BidResponse echoes the stored ledger entry.
type BidResponse struct {
	BidID     uuid.UUID       `json:"bid_id"`
	AuctionID uuid.UUID       `json:"auction_id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// SubmitArtworkRequest creates an artwork together with its auction.
type SubmitArtworkRequest struct {
	ArtistEmail string          `json:"artist_email"`
	Title       string          `json:"title"`
	ImageURL    string          `json:"image_url"`
	StartPrice  decimal.Decimal `json:"start_price"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
}

// SubmitArtworkResponse reports the ids of the created rows.
type SubmitArtworkResponse struct {
	ArtworkID uuid.UUID            `json:"artwork_id"`
	AuctionID uuid.UUID            `json:"auction_id"`
	Status    domain.AuctionStatus `json:"status"`
}

// ErrorResponse is the uniform rejection body. CurrentHighest is set only on
// bid-too-low rejections so the client can recompute and retry.
type ErrorResponse struct {
	Error          string           `json:"error"`
	CurrentHighest *decimal.Decimal `json:"current_highest,omitempty"`
}
