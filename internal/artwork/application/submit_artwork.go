package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/catfo435/auctionarena/internal/artwork/domain"
	auctiondomain "github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/shared/logger"
)

var log = logger.GetLogger()

// SubmitArtworkDTO carries a new artwork plus the terms of its auction.
type SubmitArtworkDTO struct {
	ArtistID   uuid.UUID
	Title      string
	ImageURL   string
	StartPrice decimal.Decimal
	StartTime  time.Time
	EndTime    time.Time
}

// SubmissionDTO is the output: the stored artwork and its auction.
type SubmissionDTO struct {
	Artwork *domain.Artwork
	Auction *auctiondomain.Auction
}

// SubmitArtworkUseCase creates an artwork together with its auction in one
// transaction. The auction opens in 'future' or 'ongoing' depending on where
// the start time falls relative to now; each artwork has exactly one auction.
type SubmitArtworkUseCase struct {
	artworks domain.ArtworkRepository
	auctions auctiondomain.AuctionCreator
	pool     *pgxpool.Pool
	clock    auctiondomain.Clock
}

// NewSubmitArtworkUseCase creates a new instance of SubmitArtworkUseCase.
func NewSubmitArtworkUseCase(
	artworks domain.ArtworkRepository,
	auctions auctiondomain.AuctionCreator,
	pool *pgxpool.Pool,
	clock auctiondomain.Clock,
) *SubmitArtworkUseCase {
	return &SubmitArtworkUseCase{
		artworks: artworks,
		auctions: auctions,
		pool:     pool,
		clock:    clock,
	}
}

func (uc *SubmitArtworkUseCase) Execute(ctx context.Context, cmd SubmitArtworkDTO) (sub *SubmissionDTO, err error) {
	artwork, err := domain.NewArtwork(uuid.New(), cmd.ArtistID, cmd.Title, cmd.ImageURL)
	if err != nil {
		return nil, err
	}
	auction, err := auctiondomain.NewAuction(uuid.New(), artwork.ID, cmd.StartPrice, cmd.StartTime, cmd.EndTime, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	tx, err := uc.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("submit artwork: begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			sub = nil
			err = fmt.Errorf("submit artwork: commit transaction: %w", commitErr)
		}
	}()

	if err = uc.artworks.Save(ctx, tx, artwork); err != nil {
		return nil, fmt.Errorf("submit artwork: save artwork: %w", err)
	}
	if err = uc.auctions.Create(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("submit artwork: create auction: %w", err)
	}

	log.Info("Artwork submitted",
		zap.String("artworkID", artwork.ID.String()),
		zap.String("auctionID", auction.ID.String()),
		zap.String("artistID", artwork.ArtistID.String()),
		zap.String("status", string(auction.Status)),
		zap.Time("startTime", auction.StartTime),
		zap.Time("endTime", auction.EndTime),
	)
	return &SubmissionDTO{Artwork: artwork, Auction: auction}, nil
}
