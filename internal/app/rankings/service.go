package rankings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"songrank/internal/store"
)

// PageSize is the fixed number of artists per ranking page.
const PageSize = 50

// fetchTimeout bounds the parallel songs+artists fetch.
const fetchTimeout = 10 * time.Second

// SortKey selects the ranking order.
type SortKey string

const (
	SortRatingDesc SortKey = "rating-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortSongsDesc  SortKey = "songs-desc"
	SortSongsAsc   SortKey = "songs-asc"
)

// ParseSortKey validates a sort key from a query string. The empty string
// maps to the default rating-desc order.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case "":
		return SortRatingDesc, nil
	case SortRatingDesc, SortRatingAsc, SortSongsDesc, SortSongsAsc:
		return SortKey(raw), nil
	}
	return "", fmt.Errorf("unknown sort key %q", raw)
}

// Ranking summarizes one artist's aggregate standing. Rank is a property of
// the current filtered+sorted view, not of the artist.
type Ranking struct {
	Name          string  `json:"name"`
	AverageRating int     `json:"averageRating"`
	SongCount     int     `json:"songCount"`
	ImageURL      *string `json:"imageUrl"`
	Rank          int     `json:"rank"`
}

// Query describes one ranking view. Page is 1-based; out-of-range pages
// yield an empty slice rather than being clamped here.
type Query struct {
	Search   string
	Sort     SortKey
	Page     int
	MinSongs int
}

// Page is one slice of the ranked view plus the totals needed for
// navigation controls.
type Page struct {
	Artists    []Ranking `json:"artists"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	TotalCount int       `json:"totalCount"`
	Sort       SortKey   `json:"sort"`
	Search     string    `json:"search,omitempty"`
}

// SongSource exposes the song queries needed to derive rankings.
type SongSource interface {
	ListSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

// ArtistSource exposes the artist metadata used to enrich rankings.
type ArtistSource interface {
	ListArtists(ctx context.Context) ([]store.Artist, error)
}

// Service computes artist power rankings.
type Service interface {
	List(ctx context.Context, query Query) (Page, error)
}

type service struct {
	songs   SongSource
	artists ArtistSource
}

// New constructs a rankings Service over the given sources.
func New(songs SongSource, artists ArtistSource) Service {
	return &service{songs: songs, artists: artists}
}

// List fetches the full song and artist sets in parallel and derives the
// requested ranking view. Nothing is cached: every call recomputes from a
// fresh fetch, so a failed fetch yields an error and no partial result.
func (s *service) List(ctx context.Context, query Query) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var (
		songs   []store.Song
		artists []store.Artist
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		songs, err = s.songs.ListSongs(gctx, store.SongFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		artists, err = s.artists.ListArtists(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page{}, fmt.Errorf("load ranking data: %w", err)
	}

	return Apply(Aggregate(songs, artists), query), nil
}

// SplitArtists breaks a comma-separated artist field into individual
// attributions. Pieces are trimmed; empty pieces (trailing commas, double
// commas) are dropped.
func SplitArtists(field string) []string {
	parts := strings.Split(field, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Aggregate groups songs by attributed artist and computes per-artist song
// count and mean rating. Keys are exact post-trim strings: no case folding,
// no diacritic normalization. The mean is rounded half up. Metadata images
// join by exact name; rank is left unassigned until Apply.
func Aggregate(songs []store.Song, artists []store.Artist) []Ranking {
	type stats struct {
		total int
		count int
	}

	accum := make(map[string]*stats)
	for _, song := range songs {
		for _, name := range SplitArtists(song.Artist) {
			st, ok := accum[name]
			if !ok {
				st = &stats{}
				accum[name] = st
			}
			st.total += song.Rating
			st.count++
		}
	}

	images := make(map[string]string, len(artists))
	for _, artist := range artists {
		if artist.ImageURL != nil && *artist.ImageURL != "" {
			images[artist.Name] = *artist.ImageURL
		}
	}

	rankings := make([]Ranking, 0, len(accum))
	for name, st := range accum {
		entry := Ranking{
			Name:          name,
			AverageRating: roundedMean(st.total, st.count),
			SongCount:     st.count,
		}
		if url, ok := images[name]; ok {
			u := url
			entry.ImageURL = &u
		}
		rankings = append(rankings, entry)
	}

	return rankings
}

// Apply runs the filter/sort/rank/paginate steps of the pipeline over
// aggregated entries. The input slice is not modified.
func Apply(entries []Ranking, query Query) Page {
	sortKey := query.Sort
	if sortKey == "" {
		sortKey = SortRatingDesc
	}

	needle := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]Ranking, 0, len(entries))
	for _, entry := range entries {
		if query.MinSongs > 0 && entry.SongCount < query.MinSongs {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name), needle) {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch sortKey {
		case SortRatingAsc:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating < b.AverageRating
			}
		case SortSongsDesc:
			if a.SongCount != b.SongCount {
				return a.SongCount > b.SongCount
			}
		case SortSongsAsc:
			if a.SongCount != b.SongCount {
				return a.SongCount < b.SongCount
			}
		default:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		}
		return a.Name < b.Name
	})

	for i := range filtered {
		filtered[i].Rank = i + 1
	}

	totalCount := len(filtered)
	totalPages := (totalCount + PageSize - 1) / PageSize

	page := query.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Page{
		Artists:    filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Sort:       sortKey,
		Search:     strings.TrimSpace(query.Search),
	}
}

// roundedMean is the integer mean rounded half up. Ratings are
// non-negative, so the bias adjustment never crosses zero.
func roundedMean(total, count int) int {
	if count == 0 {
		return 0
	}
	return (total + count/2) / count
}
