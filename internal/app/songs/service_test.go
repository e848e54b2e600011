package songs

import (
	"context"
	"testing"

	"songrank/internal/store"
)

type stubStore struct {
	song    store.Song
	awards  []store.Award
	ratings []store.RatingChange
}

func (s *stubStore) ListSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	return nil, nil
}

func (s *stubStore) SongByID(ctx context.Context, id string) (store.Song, error) {
	return s.song, nil
}

func (s *stubStore) SongsByAlbum(ctx context.Context, albumName string) ([]store.Song, error) {
	return nil, nil
}

func (s *stubStore) CreateSong(ctx context.Context, song store.Song) (store.Song, error) {
	return song, nil
}

func (s *stubStore) UpdateSong(ctx context.Context, id string, song store.Song) (store.Song, error) {
	return song, nil
}

func (s *stubStore) DeleteSong(ctx context.Context, id string) error {
	return nil
}

func (s *stubStore) AwardsBySong(ctx context.Context, songID string) ([]store.Award, error) {
	return s.awards, nil
}

func (s *stubStore) RatingHistoryBySong(ctx context.Context, songID string) ([]store.RatingChange, error) {
	return s.ratings, nil
}

func (s *stubStore) CommentHistoryBySong(ctx context.Context, songID string) ([]store.CommentChange, error) {
	return nil, nil
}

func TestGetComposesDetail(t *testing.T) {
	st := &stubStore{
		song:    store.Song{ID: "s1", Title: "Song", Artist: "Artist", Rating: 64},
		awards:  []store.Award{{ID: "a1", SongID: "s1", Name: "song of the month"}},
		ratings: []store.RatingChange{{ID: "r1", SongID: "s1", Rating: 64}},
	}
	svc := New(st)

	detail, err := svc.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if detail.Song.ID != "s1" {
		t.Errorf("song = %+v", detail.Song)
	}
	if detail.Color != "#FFCC33" {
		t.Errorf("color = %s, want #FFCC33 for rating 64", detail.Color)
	}
	if len(detail.Awards) != 1 || len(detail.RatingHistory) != 1 {
		t.Errorf("awards = %d, rating history = %d", len(detail.Awards), len(detail.RatingHistory))
	}
}
