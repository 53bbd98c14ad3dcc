package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catfo435/auctionarena/internal/artwork/domain"
)

// ArtworkRepository implements domain.ArtworkRepository for PostgreSQL.
type ArtworkRepository struct {
	pool *pgxpool.Pool
}

// NewArtworkRepository creates a new instance of ArtworkRepository.
func NewArtworkRepository(pool *pgxpool.Pool) *ArtworkRepository {
	return &ArtworkRepository{pool: pool}
}

// Save inserts an artwork inside the caller's transaction.
func (r *ArtworkRepository) Save(ctx context.Context, tx pgx.Tx, artwork *domain.Artwork) error {
	query := `
        INSERT INTO artworks (id, artist_id, title, image_url)
        VALUES ($1, $2, $3, $4)
    `
	_, err := tx.Exec(ctx, query,
		artwork.ID,
		artwork.ArtistID,
		artwork.Title,
		artwork.ImageURL,
	)
	return err
}
