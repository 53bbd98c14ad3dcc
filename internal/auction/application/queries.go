package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// DefaultListingLimit caps the rows of each home/upcoming listing.
const DefaultListingLimit = 5

// HomeListingsDTO bundles the two front-page views the way the listing
// endpoint serves them: hottest ongoing auctions and the most recently
// started ones.
type HomeListingsDTO struct {
	Trending []domain.AuctionSummary `json:"trending_auctions"`
	Newest   []domain.AuctionSummary `json:"newest_auctions"`
}

// BidDTO is one ledger entry of the detail view.
type BidDTO struct {
	BidID    uuid.UUID       `json:"bid_id"`
	BidderID uuid.UUID       `json:"bidder_id"`
	Amount   decimal.Decimal `json:"amount"`
	PlacedAt time.Time       `json:"placed_at"`
}

// AuctionDetailDTO is the single-auction view with its full bid history.
type AuctionDetailDTO struct {
	domain.AuctionDetail
	Bids []BidDTO `json:"bids"`
}

// QueryService exposes the read-side views composed from the auction store
// and the bid ledger. Read-only, no invariants enforced here.
type QueryService struct {
	queries domain.AuctionQueries
	bids    domain.BidRepository
}

// NewQueryService creates a new instance of QueryService.
func NewQueryService(queries domain.AuctionQueries, bids domain.BidRepository) *QueryService {
	return &QueryService{
		queries: queries,
		bids:    bids,
	}
}

// Home returns the trending and newest listings.
func (s *QueryService) Home(ctx context.Context) (*HomeListingsDTO, error) {
	trending, err := s.queries.Trending(ctx, DefaultListingLimit)
	if err != nil {
		return nil, fmt.Errorf("query trending auctions: %w", err)
	}
	newest, err := s.queries.Newest(ctx, DefaultListingLimit)
	if err != nil {
		return nil, fmt.Errorf("query newest auctions: %w", err)
	}
	return &HomeListingsDTO{Trending: trending, Newest: newest}, nil
}

// Upcoming returns future auctions ordered by start time, soonest first.
func (s *QueryService) Upcoming(ctx context.Context) ([]domain.AuctionSummary, error) {
	upcoming, err := s.queries.Upcoming(ctx, DefaultListingLimit)
	if err != nil {
		return nil, fmt.Errorf("query upcoming auctions: %w", err)
	}
	return upcoming, nil
}

// Detail returns one auction with artwork metadata and bid history,
// whatever its status.
func (s *QueryService) Detail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetailDTO, error) {
	detail, err := s.queries.Detail(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("query auction %s detail: %w", auctionID, err)
	}

	bids, err := s.bids.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("query auction %s bids: %w", auctionID, err)
	}

	dto := &AuctionDetailDTO{AuctionDetail: *detail, Bids: make([]BidDTO, 0, len(bids))}
	for _, b := range bids {
		dto.Bids = append(dto.Bids, BidDTO{
			BidID:    b.ID,
			BidderID: b.BidderID,
			Amount:   b.Amount,
			PlacedAt: b.PlacedAt,
		})
	}
	return dto, nil
}

// Won returns the auctions a bidder has won.
func (s *QueryService) Won(ctx context.Context, bidderID uuid.UUID) ([]domain.WonAuction, error) {
	won, err := s.queries.WonBy(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("query auctions won by %s: %w", bidderID, err)
	}
	return won, nil
}
