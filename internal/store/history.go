package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RatingChange is one append-only rating history entry for a song.
type RatingChange struct {
	ID        string    `json:"id"`
	SongID    string    `json:"song_id"`
	Rating    int       `json:"rating"`
	ChangedAt time.Time `json:"changed_at"`
}

// CommentChange records a comment revision along with the rating at that time.
type CommentChange struct {
	ID        string    `json:"id"`
	SongID    string    `json:"song_id"`
	Comment   *string   `json:"comment"`
	Rating    int       `json:"rating"`
	ChangedAt time.Time `json:"changed_at"`
}

// Award is a named distinction attached to a song.
type Award struct {
	ID       string `json:"id"`
	SongID   string `json:"song_id"`
	Name     string `json:"name"`
	Detail   string `json:"detail"`
	Position string `json:"position"`
}

// RatingHistoryBySong returns a song's rating changes, newest first.
func (s *Store) RatingHistoryBySong(ctx context.Context, songID string) ([]RatingChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_id, rating, changed_at
		FROM rating_history
		WHERE song_id = $1
		ORDER BY changed_at DESC
	`, songID)
	if err != nil {
		return nil, fmt.Errorf("select rating history: %w", err)
	}
	defer rows.Close()

	var changes []RatingChange
	for rows.Next() {
		var c RatingChange
		if err := rows.Scan(&c.ID, &c.SongID, &c.Rating, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan rating history: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating history: %w", err)
	}

	return changes, nil
}

// CommentHistoryBySong returns a song's comment revisions, newest first.
func (s *Store) CommentHistoryBySong(ctx context.Context, songID string) ([]CommentChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_id, comment, rating, changed_at
		FROM comment_history
		WHERE song_id = $1
		ORDER BY changed_at DESC
	`, songID)
	if err != nil {
		return nil, fmt.Errorf("select comment history: %w", err)
	}
	defer rows.Close()

	var changes []CommentChange
	for rows.Next() {
		var (
			c       CommentChange
			comment sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.SongID, &comment, &c.Rating, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan comment history: %w", err)
		}
		c.Comment = nullString(comment)
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment history: %w", err)
	}

	return changes, nil
}

// DeleteRatingHistory removes one rating history entry.
func (s *Store) DeleteRatingHistory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM rating_history
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete rating history: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rating history result: %w", err)
	}
	if affected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

// AwardsBySong returns the awards attached to a song.
func (s *Store) AwardsBySong(ctx context.Context, songID string) ([]Award, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_id, name, detail, position
		FROM awards
		WHERE song_id = $1
		ORDER BY position ASC
	`, songID)
	if err != nil {
		return nil, fmt.Errorf("select awards: %w", err)
	}
	defer rows.Close()

	var awards []Award
	for rows.Next() {
		var a Award
		if err := rows.Scan(&a.ID, &a.SongID, &a.Name, &a.Detail, &a.Position); err != nil {
			return nil, fmt.Errorf("scan award: %w", err)
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate awards: %w", err)
	}

	return awards, nil
}
