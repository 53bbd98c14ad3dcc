package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/catfo435/auctionarena/internal/auction/domain"
)

// AuctionService is the application interface of the auction module, it
// exposes the use cases to the outer layer (HTTP handlers).
type AuctionService interface {
	// PlaceBid handles a user's bid against an ongoing auction. Returns the
	// stored bid or a typed rejection.
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
	Home(ctx context.Context) (*HomeListingsDTO, error)
	Upcoming(ctx context.Context) ([]domain.AuctionSummary, error)
	Detail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetailDTO, error)
	Won(ctx context.Context, bidderID uuid.UUID) ([]domain.WonAuction, error)
}

type auctionService struct {
	placeBidUC *PlaceBidUseCase
	queries    *QueryService
}

// NewAuctionService wires the use cases behind the AuctionService interface.
func NewAuctionService(placeBidUC *PlaceBidUseCase, queries *QueryService) AuctionService {
	return &auctionService{
		placeBidUC: placeBidUC,
		queries:    queries,
	}
}

func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *auctionService) Home(ctx context.Context) (*HomeListingsDTO, error) {
	return s.queries.Home(ctx)
}

func (s *auctionService) Upcoming(ctx context.Context) ([]domain.AuctionSummary, error) {
	return s.queries.Upcoming(ctx)
}

func (s *auctionService) Detail(ctx context.Context, auctionID uuid.UUID) (*AuctionDetailDTO, error) {
	return s.queries.Detail(ctx, auctionID)
}

func (s *auctionService) Won(ctx context.Context, bidderID uuid.UUID) ([]domain.WonAuction, error) {
	return s.queries.Won(ctx, bidderID)
}
