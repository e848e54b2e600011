package posts

import (
	"context"
	"testing"

	"songrank/internal/store"
)

type stubStore struct {
	post  store.Post
	songs []store.Song
}

func (s *stubStore) ListPosts(ctx context.Context, includeUnpublished bool) ([]store.Post, error) {
	return nil, nil
}

func (s *stubStore) PostByID(ctx context.Context, id string) (store.Post, error) {
	return s.post, nil
}

func (s *stubStore) PostBySlug(ctx context.Context, slug string) (store.Post, error) {
	return s.post, nil
}

func (s *stubStore) CreatePost(ctx context.Context, post store.Post) (store.Post, error) {
	return post, nil
}

func (s *stubStore) UpdatePost(ctx context.Context, id string, post store.Post) (store.Post, error) {
	return post, nil
}

func (s *stubStore) DeletePost(ctx context.Context, id string) error {
	return nil
}

func (s *stubStore) SongsByIDs(ctx context.Context, ids []string) ([]store.Song, error) {
	return s.songs, nil
}

func TestGetBySlugPreservesSongOrder(t *testing.T) {
	st := &stubStore{
		post: store.Post{Slug: "favorites", SongIDs: []string{"c", "a", "b"}},
		songs: []store.Song{
			{ID: "a", Title: "first added"},
			{ID: "b", Title: "second added"},
			{ID: "c", Title: "third added"},
		},
	}
	svc := New(st)

	got, err := svc.GetBySlug(context.Background(), "favorites")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}

	want := []string{"c", "a", "b"}
	if len(got.Songs) != len(want) {
		t.Fatalf("got %d songs, want %d", len(got.Songs), len(want))
	}
	for i, id := range want {
		if got.Songs[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got.Songs[i].ID, id)
		}
	}
}

func TestGetBySlugSkipsUnresolvableIDs(t *testing.T) {
	st := &stubStore{
		post: store.Post{Slug: "favorites", SongIDs: []string{"a", "deleted", "b"}},
		songs: []store.Song{
			{ID: "a"},
			{ID: "b"},
		},
	}
	svc := New(st)

	got, err := svc.GetBySlug(context.Background(), "favorites")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if len(got.Songs) != 2 || got.Songs[0].ID != "a" || got.Songs[1].ID != "b" {
		t.Errorf("songs = %+v", got.Songs)
	}
}

func TestGetBySlugEmptySongList(t *testing.T) {
	svc := New(&stubStore{post: store.Post{Slug: "no-songs"}})

	got, err := svc.GetBySlug(context.Background(), "no-songs")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Songs == nil || len(got.Songs) != 0 {
		t.Errorf("songs = %v, want empty non-nil slice", got.Songs)
	}
}
