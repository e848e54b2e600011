package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artist is optional metadata enrichment for an artist name. Name is the
// natural key joining against the comma-separated Song.Artist field.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SpotifyID *string   `json:"spotify_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListArtists returns all artist metadata records.
func (s *Store) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image_url, spotify_id, created_at
		FROM artists
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var (
			a         Artist
			imageURL  sql.NullString
			spotifyID sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &imageURL, &spotifyID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		a.ImageURL = nullString(imageURL)
		a.SpotifyID = nullString(spotifyID)
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}

	return artists, nil
}

// UpsertArtist inserts or refreshes artist metadata keyed by unique name.
func (s *Store) UpsertArtist(ctx context.Context, artist Artist) error {
	name := strings.TrimSpace(artist.Name)
	if name == "" {
		return fmt.Errorf("%w: artist name is required", ErrInvalidSong)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO artists (id, name, image_url, spotify_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (name)
		DO UPDATE SET image_url = EXCLUDED.image_url, spotify_id = EXCLUDED.spotify_id
	`, uuid.New().String(), name, artist.ImageURL, artist.SpotifyID); err != nil {
		return fmt.Errorf("upsert artist: %w", err)
	}

	return nil
}
