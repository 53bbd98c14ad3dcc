package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMissingTitle = errors.New("artwork title is required")

// Artwork is the piece being auctioned. The auction core only stores and
// forwards its metadata; image upload and rendering live elsewhere.
type Artwork struct {
	ID        uuid.UUID
	ArtistID  uuid.UUID
	Title     string
	ImageURL  string
	CreatedAt time.Time
}

// NewArtwork creates a new Artwork instance.
func NewArtwork(id, artistID uuid.UUID, title, imageURL string) (*Artwork, error) {
	if title == "" {
		return nil, ErrMissingTitle
	}
	return &Artwork{
		ID:       id,
		ArtistID: artistID,
		Title:    title,
		ImageURL: imageURL,
	}, nil
}

// ArtworkRepository persists artworks. Save runs inside a caller-managed
// transaction so the artwork and its auction commit together.
type ArtworkRepository interface {
	Save(ctx context.Context, tx pgx.Tx, artwork *Artwork) error
}
