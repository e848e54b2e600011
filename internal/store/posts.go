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

// Post models one blog entry. SongIDs reference songs in display order.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Preview   *string    `json:"preview,omitempty"`
	SongIDs   []string   `json:"song_ids"`
	Published bool       `json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

const postColumns = `id, title, slug, content, preview, song_ids, published, created_at, updated_at`

// ListPosts returns posts newest first. Unpublished drafts are included
// only when requested.
func (s *Store) ListPosts(ctx context.Context, includeUnpublished bool) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts`
	if !includeUnpublished {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// PostByID returns a single post regardless of published state.
func (s *Store) PostByID(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE id = $1
	`, id)
	return postFromRow(row)
}

// PostBySlug returns a published post by its slug.
func (s *Store) PostBySlug(ctx context.Context, slug string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE slug = $1 AND published = TRUE
	`, slug)
	return postFromRow(row)
}

// CreatePost inserts a new blog post.
func (s *Store) CreatePost(ctx context.Context, post Post) (Post, error) {
	if err := validatePost(post); err != nil {
		return Post{}, err
	}

	post.ID = uuid.New().String()
	if post.SongIDs == nil {
		post.SongIDs = []string{}
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO blog_posts (id, title, slug, content, preview, song_ids, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, post.ID, post.Title, post.Slug, post.Content, post.Preview, pq.Array(post.SongIDs), post.Published); err != nil {
		if isUniqueViolation(err) {
			return Post{}, ErrDuplicateSlug
		}
		return Post{}, fmt.Errorf("insert post: %w", err)
	}

	return s.PostByID(ctx, post.ID)
}

// UpdatePost replaces the mutable fields of a post and bumps updated_at.
func (s *Store) UpdatePost(ctx context.Context, id string, post Post) (Post, error) {
	if err := validatePost(post); err != nil {
		return Post{}, err
	}
	if post.SongIDs == nil {
		post.SongIDs = []string{}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE blog_posts SET
			title = $2, slug = $3, content = $4, preview = $5,
			song_ids = $6, published = $7, updated_at = NOW()
		WHERE id = $1
	`, id, post.Title, post.Slug, post.Content, post.Preview, pq.Array(post.SongIDs), post.Published)
	if err != nil {
		if isUniqueViolation(err) {
			return Post{}, ErrDuplicateSlug
		}
		return Post{}, fmt.Errorf("update post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Post{}, fmt.Errorf("update post result: %w", err)
	}
	if affected == 0 {
		return Post{}, ErrPostNotFound
	}

	return s.PostByID(ctx, id)
}

// DeletePost removes a blog post.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM blog_posts
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post result: %w", err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func validatePost(post Post) error {
	switch {
	case strings.TrimSpace(post.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidPost)
	case strings.TrimSpace(post.Slug) == "":
		return fmt.Errorf("%w: slug is required", ErrInvalidPost)
	case strings.TrimSpace(post.Content) == "":
		return fmt.Errorf("%w: content is required", ErrInvalidPost)
	}
	return nil
}

func postFromRow(row *sql.Row) (Post, error) {
	post, err := scanPostRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, err
	}
	return post, nil
}

func scanPostRow(scanner songScanner) (Post, error) {
	var (
		post      Post
		preview   sql.NullString
		songIDs   pq.StringArray
		updatedAt sql.NullTime
	)

	if err := scanner.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content,
		&preview, &songIDs, &post.Published, &post.CreatedAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, err
		}
		return Post{}, fmt.Errorf("scan post: %w", err)
	}

	post.Preview = nullString(preview)
	post.SongIDs = []string(songIDs)
	if updatedAt.Valid {
		t := updatedAt.Time
		post.UpdatedAt = &t
	}

	return post, nil
}
