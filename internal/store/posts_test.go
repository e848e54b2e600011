package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		post    Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: Post{Title: "Songs of June", Slug: "songs-of-june", Content: "..."},
		},
		{
			name:    "missing title",
			post:    Post{Slug: "songs-of-june", Content: "..."},
			wantErr: true,
		},
		{
			name:    "missing slug",
			post:    Post{Title: "Songs of June", Content: "..."},
			wantErr: true,
		},
		{
			name:    "missing content",
			post:    Post{Title: "Songs of June", Slug: "songs-of-june"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := validatePost(tc.post)
			if tc.wantErr && !errors.Is(err, ErrInvalidPost) {
				t.Fatalf("error = %v, want ErrInvalidPost", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "content", "preview", "song_ids", "published", "created_at", "updated_at",
	})
}

func TestListPostsPublishedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+postColumns+`
		FROM blog_posts WHERE published = TRUE ORDER BY created_at DESC`)).
		WillReturnRows(postRows().
			AddRow("p1", "Songs of June", "songs-of-june", "body", nil,
				pq.StringArray{"s1", "s2"}, true, created, nil))

	posts, err := s.ListPosts(context.Background(), false)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "songs-of-june" {
		t.Fatalf("posts = %+v", posts)
	}
	if len(posts[0].SongIDs) != 2 || posts[0].SongIDs[0] != "s1" {
		t.Errorf("song ids = %v", posts[0].SongIDs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListPostsIncludesDrafts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+postColumns+`
		FROM blog_posts ORDER BY created_at DESC`)).
		WillReturnRows(postRows())

	if _, err := s.ListPosts(context.Background(), true); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE slug = $1 AND published = TRUE
	`)).
		WithArgs("missing").
		WillReturnRows(postRows())

	if _, err := s.PostBySlug(context.Background(), "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("error = %v, want ErrPostNotFound", err)
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO blog_posts (id, title, slug, content, preview, song_ids, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreatePost(context.Background(), Post{Title: "Dup", Slug: "dup", Content: "body"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("error = %v, want ErrDuplicateSlug", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE blog_posts SET
			title = $2, slug = $3, content = $4, preview = $5,
			song_ids = $6, published = $7, updated_at = NOW()
		WHERE id = $1
	`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = s.UpdatePost(context.Background(), "missing", Post{Title: "T", Slug: "t", Content: "c"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("error = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM blog_posts
		WHERE id = $1
	`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeletePost(context.Background(), "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("error = %v, want ErrPostNotFound", err)
	}
}
