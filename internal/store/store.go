package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
	// ErrInvalidSong indicates validation failure for song data.
	ErrInvalidSong = errors.New("invalid song")
	// ErrDuplicateSong signals a song with the same title and artist already exists.
	ErrDuplicateSong = errors.New("song already exists")
	// ErrPostNotFound signals a missing blog post.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidPost indicates validation failure for blog post data.
	ErrInvalidPost = errors.New("invalid post")
	// ErrDuplicateSlug signals the post slug is already taken.
	ErrDuplicateSlug = errors.New("slug already taken")
	// ErrHistoryNotFound signals a missing rating history entry.
	ErrHistoryNotFound = errors.New("history entry not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
