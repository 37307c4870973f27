package repository

import (
	"context"
	"errors"
	"fmt"

	"bonusbot/database"
	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// ArtistRepository implements interfaces.ArtistRepository
type ArtistRepository struct {
	q Queryable
}

// NewArtistRepository creates a new artist repository
func NewArtistRepository(db *database.DB) *ArtistRepository {
	return &ArtistRepository{q: db.Pool}
}

var _ interfaces.ArtistRepository = (*ArtistRepository)(nil)

// GetByName returns the artist, or nil when it does not exist
func (r *ArtistRepository) GetByName(ctx context.Context, name string) (*entities.Artist, error) {
	query := `
		SELECT name, timezone, created_at, updated_at
		FROM artists
		WHERE name = $1
	`

	var artist entities.Artist
	err := r.q.QueryRow(ctx, query, name).Scan(
		&artist.Name,
		&artist.Timezone,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %s: %w", name, err)
	}

	return &artist, nil
}

// List returns all artists ordered by name
func (r *ArtistRepository) List(ctx context.Context) ([]*entities.Artist, error) {
	rows, err := r.q.Query(ctx, `
		SELECT name, timezone, created_at, updated_at
		FROM artists
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	var artists []*entities.Artist
	for rows.Next() {
		var artist entities.Artist
		if err := rows.Scan(&artist.Name, &artist.Timezone, &artist.CreatedAt, &artist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, &artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

// Upsert creates the artist or updates its timezone
func (r *ArtistRepository) Upsert(ctx context.Context, artist *entities.Artist) error {
	if artist.Name == "" {
		return entities.ErrMissingArtist
	}
	if _, err := artist.Location(nil); err != nil {
		return err
	}

	query := `
		INSERT INTO artists (name, timezone)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET timezone = EXCLUDED.timezone, updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, artist.Name, artist.Timezone).Scan(&artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert artist %s: %w", artist.Name, err)
	}
	return nil
}
