package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionSummary is a listing row: the auction joined with its artwork
// metadata and the aggregated current highest bid. HighestBid is never zero
// valued for a bid-less auction, it falls back to the start price.
type AuctionSummary struct {
	AuctionID    uuid.UUID       `json:"auction_id"`
	ArtworkTitle string          `json:"artwork_title"`
	ImageURL     string          `json:"image_url"`
	HighestBid   decimal.Decimal `json:"highest_bid"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       AuctionStatus   `json:"status"`
}

// AuctionDetail is the single-auction view, retrievable regardless of
// status.
type AuctionDetail struct {
	AuctionID    uuid.UUID       `json:"auction_id"`
	ArtworkID    uuid.UUID       `json:"artwork_id"`
	ArtworkTitle string          `json:"artwork_title"`
	ImageURL     string          `json:"image_url"`
	ArtistName   string          `json:"artist_name"`
	StartPrice   decimal.Decimal `json:"start_price"`
	HighestBid   decimal.Decimal `json:"highest_bid"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       AuctionStatus   `json:"status"`
}

// WonAuction is one entry of a bidder's "auctions won" view.
type WonAuction struct {
	AuctionID    uuid.UUID       `json:"auction_id"`
	ArtworkTitle string          `json:"artwork_title"`
	ImageURL     string          `json:"image_url"`
	StartPrice   decimal.Decimal `json:"start_price"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	DecidedAt    time.Time       `json:"decided_at"`
}

// AuctionQueries is the read-only query facade over the auction store and
// bid ledger. Implementations return consistent snapshots but enforce no
// invariants of their own.
type AuctionQueries interface {
	// Trending lists ongoing auctions ordered by current highest bid,
	// descending.
	Trending(ctx context.Context, limit int) ([]AuctionSummary, error)
	// Newest lists ongoing auctions ordered by start time, descending.
	Newest(ctx context.Context, limit int) ([]AuctionSummary, error)
	// Upcoming lists future auctions ordered by start time, ascending.
	Upcoming(ctx context.Context, limit int) ([]AuctionSummary, error)
	Detail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetail, error)
	WonBy(ctx context.Context, bidderID uuid.UUID) ([]WonAuction, error)
}
