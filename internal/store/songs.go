package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Song models one rated track in the catalog. The Artist field may pack
// several collaborators as a comma-separated list.
type Song struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Artist         string     `json:"artist"`
	Rating         int        `json:"rating"`
	Comment        *string    `json:"comment,omitempty"`
	CoverURL       *string    `json:"cover_url,omitempty"`
	SpotifyTrackID *string    `json:"spotify_track_id,omitempty"`
	AlbumName      *string    `json:"album_name,omitempty"`
	ReleaseDate    *string    `json:"release_date,omitempty"`
	DurationMS     *int       `json:"duration_ms,omitempty"`
	Explicit       *bool      `json:"explicit,omitempty"`
	Popularity     *int       `json:"popularity,omitempty"`
	ISRC           *string    `json:"isrc,omitempty"`
	TrackNumber    *int       `json:"track_number,omitempty"`
	DiscNumber     *int       `json:"disc_number,omitempty"`
	AlbumType      *string    `json:"album_type,omitempty"`
	PreviewURL     *string    `json:"preview_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// SongFilter constrains the results returned by ListSongs.
type SongFilter struct {
	Query string
}

const songColumns = `id, title, artist, rating, comment, cover_url, spotify_track_id,
	       album_name, release_date, duration_ms, explicit, popularity, isrc,
	       track_number, disc_number, album_type, preview_url, created_at, updated_at`

// ListSongs returns songs matching the filter, best rated first.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]Song, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs`

	var args []any
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		query += " WHERE title ILIKE $1 OR artist ILIKE $1"
	}

	query += " ORDER BY rating DESC, title ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

// SongsByIDs fetches the given songs in one round trip. Result order is
// unspecified; callers re-order against their id list.
func (s *Store) SongsByIDs(ctx context.Context, ids []string) ([]Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select songs by ids: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

// SongsByAlbum returns an album's tracks in track order, unnumbered tracks last.
func (s *Store) SongsByAlbum(ctx context.Context, albumName string) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE album_name = $1
		ORDER BY track_number ASC NULLS LAST, title ASC
	`, albumName)
	if err != nil {
		return nil, fmt.Errorf("select album songs: %w", err)
	}
	defer rows.Close()

	return scanSongRows(rows)
}

// SongByID returns a single song by its identifier.
func (s *Store) SongByID(ctx context.Context, id string) (Song, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE id = $1
	`, id)

	song, err := scanSongRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, err
	}
	return song, nil
}

// CreateSong inserts a new song. Title+artist pairs are advisory-unique:
// an existing pair is rejected here, not enforced by the schema.
func (s *Store) CreateSong(ctx context.Context, song Song) (Song, error) {
	if err := validateSong(song); err != nil {
		return Song{}, err
	}

	song.Title = strings.TrimSpace(song.Title)
	song.Artist = strings.TrimSpace(song.Artist)

	var existing string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM songs
		WHERE title = $1 AND artist = $2
	`, song.Title, song.Artist).Scan(&existing)
	switch {
	case err == nil:
		return Song{}, fmt.Errorf("%w: %q by %q", ErrDuplicateSong, song.Title, song.Artist)
	case !errors.Is(err, sql.ErrNoRows):
		return Song{}, fmt.Errorf("check duplicate song: %w", err)
	}

	song.ID = uuid.New().String()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (
			id, title, artist, rating, comment, cover_url, spotify_track_id,
			album_name, release_date, duration_ms, explicit, popularity, isrc,
			track_number, disc_number, album_type, preview_url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
	`,
		song.ID, song.Title, song.Artist, song.Rating, song.Comment, song.CoverURL,
		song.SpotifyTrackID, song.AlbumName, song.ReleaseDate, song.DurationMS,
		song.Explicit, song.Popularity, song.ISRC, song.TrackNumber, song.DiscNumber,
		song.AlbumType, song.PreviewURL,
	); err != nil {
		if isUniqueViolation(err) {
			return Song{}, ErrDuplicateSong
		}
		return Song{}, fmt.Errorf("insert song: %w", err)
	}

	return s.SongByID(ctx, song.ID)
}

// UpdateSong replaces the mutable fields of a song. Rating and comment
// changes are appended to the history tables in the same transaction.
func (s *Store) UpdateSong(ctx context.Context, id string, song Song) (Song, error) {
	if err := validateSong(song); err != nil {
		return Song{}, err
	}

	song.Title = strings.TrimSpace(song.Title)
	song.Artist = strings.TrimSpace(song.Artist)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Song{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		prevRating  int
		prevComment sql.NullString
	)
	err = tx.QueryRowContext(ctx, `
		SELECT rating, comment
		FROM songs
		WHERE id = $1
	`, id).Scan(&prevRating, &prevComment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, fmt.Errorf("lookup song: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE songs SET
			title = $2, artist = $3, rating = $4, comment = $5, cover_url = $6,
			spotify_track_id = $7, album_name = $8, release_date = $9,
			duration_ms = $10, explicit = $11, popularity = $12, isrc = $13,
			track_number = $14, disc_number = $15, album_type = $16,
			preview_url = $17, updated_at = NOW()
		WHERE id = $1
	`,
		id, song.Title, song.Artist, song.Rating, song.Comment, song.CoverURL,
		song.SpotifyTrackID, song.AlbumName, song.ReleaseDate, song.DurationMS,
		song.Explicit, song.Popularity, song.ISRC, song.TrackNumber, song.DiscNumber,
		song.AlbumType, song.PreviewURL,
	); err != nil {
		return Song{}, fmt.Errorf("update song: %w", err)
	}

	if song.Rating != prevRating {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rating_history (id, song_id, rating, changed_at)
			VALUES ($1, $2, $3, NOW())
		`, uuid.New().String(), id, song.Rating); err != nil {
			return Song{}, fmt.Errorf("insert rating history: %w", err)
		}
	}

	newComment := ""
	if song.Comment != nil {
		newComment = *song.Comment
	}
	if newComment != prevComment.String {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comment_history (id, song_id, comment, rating, changed_at)
			VALUES ($1, $2, $3, $4, NOW())
		`, uuid.New().String(), id, song.Comment, song.Rating); err != nil {
			return Song{}, fmt.Errorf("insert comment history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Song{}, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return s.SongByID(ctx, id)
}

// DeleteSong removes a song and its dependent rows.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM songs
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete song result: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

func validateSong(song Song) error {
	switch {
	case strings.TrimSpace(song.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidSong)
	case strings.TrimSpace(song.Artist) == "":
		return fmt.Errorf("%w: artist is required", ErrInvalidSong)
	case song.Rating < 0 || song.Rating > 100:
		return fmt.Errorf("%w: rating must be between 0 and 100", ErrInvalidSong)
	}
	return nil
}

type songScanner interface {
	Scan(dest ...any) error
}

func scanSongRow(scanner songScanner) (Song, error) {
	var (
		song        Song
		comment     sql.NullString
		coverURL    sql.NullString
		spotifyID   sql.NullString
		albumName   sql.NullString
		releaseDate sql.NullString
		durationMS  sql.NullInt64
		explicit    sql.NullBool
		popularity  sql.NullInt64
		isrc        sql.NullString
		trackNumber sql.NullInt64
		discNumber  sql.NullInt64
		albumType   sql.NullString
		previewURL  sql.NullString
		updatedAt   sql.NullTime
	)

	if err := scanner.Scan(
		&song.ID, &song.Title, &song.Artist, &song.Rating,
		&comment, &coverURL, &spotifyID, &albumName, &releaseDate,
		&durationMS, &explicit, &popularity, &isrc,
		&trackNumber, &discNumber, &albumType, &previewURL,
		&song.CreatedAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, err
		}
		return Song{}, fmt.Errorf("scan song: %w", err)
	}

	song.Comment = nullString(comment)
	song.CoverURL = nullString(coverURL)
	song.SpotifyTrackID = nullString(spotifyID)
	song.AlbumName = nullString(albumName)
	song.ReleaseDate = nullString(releaseDate)
	song.DurationMS = nullInt(durationMS)
	song.Explicit = nullBool(explicit)
	song.Popularity = nullInt(popularity)
	song.ISRC = nullString(isrc)
	song.TrackNumber = nullInt(trackNumber)
	song.DiscNumber = nullInt(discNumber)
	song.AlbumType = nullString(albumType)
	song.PreviewURL = nullString(previewURL)
	if updatedAt.Valid {
		t := updatedAt.Time
		song.UpdatedAt = &t
	}

	return song, nil
}

func scanSongRows(rows *sql.Rows) ([]Song, error) {
	var songs []Song
	for rows.Next() {
		song, err := scanSongRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
