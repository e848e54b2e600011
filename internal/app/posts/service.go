package posts

import (
	"context"

	"songrank/internal/store"
)

// Store defines the persistence hooks for blog workflows.
type Store interface {
	ListPosts(ctx context.Context, includeUnpublished bool) ([]store.Post, error)
	PostByID(ctx context.Context, id string) (store.Post, error)
	PostBySlug(ctx context.Context, slug string) (store.Post, error)
	CreatePost(ctx context.Context, post store.Post) (store.Post, error)
	UpdatePost(ctx context.Context, id string, post store.Post) (store.Post, error)
	DeletePost(ctx context.Context, id string) error
	SongsByIDs(ctx context.Context, ids []string) ([]store.Song, error)
}

// PostWithSongs is a post plus its referenced songs in song_ids order.
type PostWithSongs struct {
	store.Post
	Songs []store.Song `json:"songs"`
}

// Service coordinates blog post operations.
type Service interface {
	List(ctx context.Context, includeUnpublished bool) ([]store.Post, error)
	GetByID(ctx context.Context, id string) (store.Post, error)
	GetBySlug(ctx context.Context, slug string) (PostWithSongs, error)
	Create(ctx context.Context, post store.Post) (store.Post, error)
	Update(ctx context.Context, id string, post store.Post) (store.Post, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs a blog Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, includeUnpublished bool) ([]store.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPosts(ctx, includeUnpublished)
}

func (s *service) GetByID(ctx context.Context, id string) (store.Post, error) {
	if err := ctx.Err(); err != nil {
		return store.Post{}, err
	}
	return s.store.PostByID(ctx, id)
}

// GetBySlug resolves a published post and its songs. Songs come back from
// the store in arbitrary order and are re-sequenced to match song_ids;
// ids that no longer resolve are skipped.
func (s *service) GetBySlug(ctx context.Context, slug string) (PostWithSongs, error) {
	if err := ctx.Err(); err != nil {
		return PostWithSongs{}, err
	}

	post, err := s.store.PostBySlug(ctx, slug)
	if err != nil {
		return PostWithSongs{}, err
	}

	result := PostWithSongs{Post: post, Songs: []store.Song{}}
	if len(post.SongIDs) == 0 {
		return result, nil
	}

	songs, err := s.store.SongsByIDs(ctx, post.SongIDs)
	if err != nil {
		return PostWithSongs{}, err
	}

	byID := make(map[string]store.Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}
	for _, id := range post.SongIDs {
		if song, ok := byID[id]; ok {
			result.Songs = append(result.Songs, song)
		}
	}

	return result, nil
}

func (s *service) Create(ctx context.Context, post store.Post) (store.Post, error) {
	if err := ctx.Err(); err != nil {
		return store.Post{}, err
	}
	return s.store.CreatePost(ctx, post)
}

func (s *service) Update(ctx context.Context, id string, post store.Post) (store.Post, error) {
	if err := ctx.Err(); err != nil {
		return store.Post{}, err
	}
	return s.store.UpdatePost(ctx, id, post)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePost(ctx, id)
}
