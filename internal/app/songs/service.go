package songs

import (
	"context"

	"songrank/internal/store"
)

// Store defines the persistence hooks for song workflows.
type Store interface {
	ListSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	SongByID(ctx context.Context, id string) (store.Song, error)
	SongsByAlbum(ctx context.Context, albumName string) ([]store.Song, error)
	CreateSong(ctx context.Context, song store.Song) (store.Song, error)
	UpdateSong(ctx context.Context, id string, song store.Song) (store.Song, error)
	DeleteSong(ctx context.Context, id string) error
	AwardsBySong(ctx context.Context, songID string) ([]store.Award, error)
	RatingHistoryBySong(ctx context.Context, songID string) ([]store.RatingChange, error)
	CommentHistoryBySong(ctx context.Context, songID string) ([]store.CommentChange, error)
}

// Detail bundles a song with its awards and change history for the
// detail page. Color is derived from the current rating.
type Detail struct {
	Song           store.Song            `json:"song"`
	Color          string                `json:"color"`
	Awards         []store.Award         `json:"awards"`
	RatingHistory  []store.RatingChange  `json:"rating_history"`
	CommentHistory []store.CommentChange `json:"comment_history"`
}

// Service coordinates track-level operations.
type Service interface {
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	Get(ctx context.Context, id string) (Detail, error)
	ListByAlbum(ctx context.Context, albumName string) ([]store.Song, error)
	Create(ctx context.Context, song store.Song) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) (store.Song, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs a song Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, filter)
}

func (s *service) Get(ctx context.Context, id string) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	song, err := s.store.SongByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	awards, err := s.store.AwardsBySong(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	ratings, err := s.store.RatingHistoryBySong(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	comments, err := s.store.CommentHistoryBySong(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Song:           song,
		Color:          RatingColor(song.Rating),
		Awards:         awards,
		RatingHistory:  ratings,
		CommentHistory: comments,
	}, nil
}

func (s *service) ListByAlbum(ctx context.Context, albumName string) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongsByAlbum(ctx, albumName)
}

func (s *service) Create(ctx context.Context, song store.Song) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) Update(ctx context.Context, id string, song store.Song) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.UpdateSong(ctx, id, song)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}
