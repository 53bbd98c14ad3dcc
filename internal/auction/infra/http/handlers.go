package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	artworkapp "github.com/catfo435/auctionarena/internal/artwork/application"
	artworkdomain "github.com/catfo435/auctionarena/internal/artwork/domain"
	"github.com/catfo435/auctionarena/internal/auction/application"
	"github.com/catfo435/auctionarena/internal/auction/domain"
	"github.com/catfo435/auctionarena/internal/shared/logger"
	userdomain "github.com/catfo435/auctionarena/internal/user/domain"
)

var log = logger.GetLogger()

// ArtworkSubmitter is the slice of the artwork module the handler needs.
type ArtworkSubmitter interface {
	Execute(ctx context.Context, cmd artworkapp.SubmitArtworkDTO) (*artworkapp.SubmissionDTO, error)
}

// Handler exposes the auction core over HTTP. Clients poll these endpoints
// for bid updates; there is no push channel.
type Handler struct {
	service application.AuctionService
	users   userdomain.UserRepository
	submit  ArtworkSubmitter
}

// NewHandler creates a new instance of Handler.
func NewHandler(service application.AuctionService, users userdomain.UserRepository, submit ArtworkSubmitter) *Handler {
	return &Handler{
		service: service,
		users:   users,
		submit:  submit,
	}
}

// Register mounts the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/auctions", h.home)
	api.Get("/auctions/upcoming", h.upcoming)
	api.Get("/auctions/:id", h.detail)
	api.Post("/auctions/:id/bids", h.placeBid)
	api.Post("/artworks", h.submitArtwork)
	api.Get("/users/:id/wins", h.wins)
}

func (h *Handler) home(c *fiber.Ctx) error {
	listings, err := h.service.Home(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(listings)
}

func (h *Handler) upcoming(c *fiber.Ctx) error {
	upcoming, err := h.service.Upcoming(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"upcoming_auctions": upcoming})
}

func (h *Handler) detail(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid auction id"})
	}
	detail, err := h.service.Detail(c.Context(), auctionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(detail)
}

func (h *Handler) placeBid(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid auction id"})
	}
	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	bidder, err := h.users.GetByEmail(c.Context(), req.BidderEmail)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "bidder not found"})
		}
		return writeError(c, err)
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidDTO{
		AuctionID: auctionID,
		BidderID:  bidder.ID,
		Amount:    req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BidResponse{
		BidID:     bid.ID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		PlacedAt:  bid.PlacedAt,
	})
}

func (h *Handler) submitArtwork(c *fiber.Ctx) error {
	var req SubmitArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	artist, err := h.users.GetByEmail(c.Context(), req.ArtistEmail)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "artist not found"})
		}
		return writeError(c, err)
	}

	sub, err := h.submit.Execute(c.Context(), artworkapp.SubmitArtworkDTO{
		ArtistID:   artist.ID,
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		StartPrice: req.StartPrice,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(SubmitArtworkResponse{
		ArtworkID: sub.Artwork.ID,
		AuctionID: sub.Auction.ID,
		Status:    sub.Auction.Status,
	})
}

func (h *Handler) wins(c *fiber.Ctx) error {
	bidderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user id"})
	}
	won, err := h.service.Won(c.Context(), bidderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"auctions_won": won})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged and surfaced as a generic failure, never dropped.
func writeError(c *fiber.Ctx, err error) error {
	var tooLow *domain.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		highest := tooLow.Highest
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:          "bid amount does not exceed current highest bid",
			CurrentHighest: &highest,
		})
	case errors.Is(err, domain.ErrAuctionNotFound), errors.Is(err, domain.ErrBidderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAuctionNotOpen):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "auction is not open for bidding"})
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTimeWindow),
		errors.Is(err, artworkdomain.ErrMissingTitle):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "auction is busy, retry shortly"})
	default:
		log.Error("HTTP request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
	}
}
