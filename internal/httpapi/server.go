// Package httpapi exposes the JSON API consumed by the site frontend:
// public catalog and blog reads, the artist rankings view, and the
// admin-gated write surface.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"songrank/internal/app/artists"
	"songrank/internal/app/posts"
	"songrank/internal/app/rankings"
	"songrank/internal/app/songs"
	"songrank/internal/musicapi"
	"songrank/internal/store"
)

// SongService coordinates track-level operations.
type SongService interface {
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
	Get(ctx context.Context, id string) (songs.Detail, error)
	ListByAlbum(ctx context.Context, albumName string) ([]store.Song, error)
	Create(ctx context.Context, song store.Song) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) (store.Song, error)
	Delete(ctx context.Context, id string) error
}

// RankingService computes the artist rankings view.
type RankingService interface {
	List(ctx context.Context, query rankings.Query) (rankings.Page, error)
}

// ArtistService provides artist-centric operations.
type ArtistService interface {
	List(ctx context.Context) ([]store.Artist, error)
	Upsert(ctx context.Context, artist store.Artist) error
	Songs(ctx context.Context, name string) ([]artists.RankedSong, error)
}

// PostService coordinates blog post operations.
type PostService interface {
	List(ctx context.Context, includeUnpublished bool) ([]store.Post, error)
	GetByID(ctx context.Context, id string) (store.Post, error)
	GetBySlug(ctx context.Context, slug string) (posts.PostWithSongs, error)
	Create(ctx context.Context, post store.Post) (store.Post, error)
	Update(ctx context.Context, id string, post store.Post) (store.Post, error)
	Delete(ctx context.Context, id string) error
}

// HistoryService exposes the rating history maintenance operation.
type HistoryService interface {
	DeleteRatingHistory(ctx context.Context, id string) error
}

// SpotifyResolver resolves Spotify track URLs to metadata.
type SpotifyResolver interface {
	LookupTrack(ctx context.Context, rawURL string) (musicapi.TrackMetadata, error)
}

// YouTubeResolver resolves YouTube video URLs to metadata.
type YouTubeResolver interface {
	LookupVideo(ctx context.Context, rawURL string) (musicapi.TrackMetadata, error)
}

// SessionGate is the admin session check backing the write surface.
type SessionGate interface {
	Login(password string) (string, error)
	Authenticated(r *http.Request) bool
	Cookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	songs    SongService
	rankings RankingService
	artists  ArtistService
	posts    PostService
	history  HistoryService
	spotify  SpotifyResolver
	youtube  YouTubeResolver
	gate     SessionGate
}

// New configures a Server with the given service implementations. The
// metadata resolvers may be nil when no provider credentials are set.
func New(
	songSvc SongService,
	rankingSvc RankingService,
	artistSvc ArtistService,
	postSvc PostService,
	historySvc HistoryService,
	spotify SpotifyResolver,
	youtube YouTubeResolver,
	gate SessionGate,
) *Server {
	return &Server{
		songs:    songSvc,
		rankings: rankingSvc,
		artists:  artistSvc,
		posts:    postSvc,
		history:  historySvc,
		spotify:  spotify,
		youtube:  youtube,
		gate:     gate,
	}
}

// Routes exposes the HTTP handlers for the site API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Song routes
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("POST /api/v1/songs", s.requireAdmin(s.handleCreateSong))
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("PUT /api/v1/songs/{id}", s.requireAdmin(s.handleUpdateSong))
	mux.HandleFunc("DELETE /api/v1/songs/{id}", s.requireAdmin(s.handleDeleteSong))
	mux.HandleFunc("DELETE /api/v1/songs/{id}/rating-history/{historyId}", s.requireAdmin(s.handleDeleteRatingHistory))

	// Album routes
	mux.HandleFunc("GET /api/v1/albums/{name}/songs", s.handleAlbumSongs)

	// Ranking routes
	mux.HandleFunc("GET /api/v1/rankings/artists", s.handleArtistRankings)

	// Artist routes
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("POST /api/v1/artists", s.requireAdmin(s.handleUpsertArtist))
	mux.HandleFunc("GET /api/v1/artists/{name}/songs", s.handleArtistSongs)

	// Blog routes
	mux.HandleFunc("GET /api/v1/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/v1/posts", s.requireAdmin(s.handleCreatePost))
	mux.HandleFunc("GET /api/v1/posts/slug/{slug}", s.handleGetPostBySlug)
	mux.HandleFunc("GET /api/v1/posts/{id}", s.requireAdmin(s.handleGetPost))
	mux.HandleFunc("PUT /api/v1/posts/{id}", s.requireAdmin(s.handleUpdatePost))
	mux.HandleFunc("DELETE /api/v1/posts/{id}", s.requireAdmin(s.handleDeletePost))

	// Metadata proxy routes
	mux.HandleFunc("GET /api/v1/metadata/spotify", s.requireAdmin(s.handleSpotifyLookup))
	mux.HandleFunc("GET /api/v1/metadata/youtube", s.requireAdmin(s.handleYouTubeLookup))

	// Admin session routes
	mux.HandleFunc("POST /api/v1/admin/login", s.handleAdminLogin)
	mux.HandleFunc("POST /api/v1/admin/logout", s.handleAdminLogout)
	mux.HandleFunc("GET /api/v1/admin/session", s.handleAdminSession)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// requireAdmin rejects unauthenticated requests before the wrapped
// handler touches any service. Failing closed here is what keeps the
// whole write surface behind the single shared credential.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.gate.Authenticated(r) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
