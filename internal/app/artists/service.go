package artists

import (
	"context"

	"songrank/internal/app/rankings"
	"songrank/internal/store"
)

// Store defines the persistence hooks for artist workflows.
type Store interface {
	ListSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	ListArtists(ctx context.Context) ([]store.Artist, error)
	UpsertArtist(ctx context.Context, artist store.Artist) error
}

// RankedSong is a song annotated with its position on an artist's page.
type RankedSong struct {
	store.Song
	Rank int `json:"rank"`
}

// Service provides artist-centric operations.
type Service interface {
	List(ctx context.Context) ([]store.Artist, error)
	Upsert(ctx context.Context, artist store.Artist) error
	Songs(ctx context.Context, name string) ([]RankedSong, error)
}

type service struct {
	store Store
}

// New constructs an artist Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Upsert(ctx context.Context, artist store.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpsertArtist(ctx, artist)
}

// Songs returns the songs attributed to one artist, best rated first.
// Attribution is exact membership in the comma-split artist list, so
// collaborations count for every listed collaborator.
func (s *service) Songs(ctx context.Context, name string) ([]RankedSong, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := s.store.ListSongs(ctx, store.SongFilter{})
	if err != nil {
		return nil, err
	}

	var ranked []RankedSong
	for _, song := range all {
		for _, attributed := range rankings.SplitArtists(song.Artist) {
			if attributed == name {
				ranked = append(ranked, RankedSong{Song: song, Rank: len(ranked) + 1})
				break
			}
		}
	}

	return ranked, nil
}
