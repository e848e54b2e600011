package main

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	"songrank/internal/app/artists"
	"songrank/internal/app/posts"
	"songrank/internal/app/rankings"
	"songrank/internal/app/songs"
	"songrank/internal/auth"
	"songrank/internal/httpapi"
	"songrank/internal/middleware"
	"songrank/internal/musicapi"
	"songrank/internal/store"
)

func newHTTPHandler(cfg Config, db *sql.DB) (http.Handler, error) {
	dataStore := store.New(db)

	songSvc := songs.New(dataStore)
	rankingSvc := rankings.New(dataStore, dataStore)
	artistSvc := artists.New(dataStore)
	postSvc := posts.New(dataStore)

	gate, err := newSessionGate(cfg)
	if err != nil {
		return nil, err
	}

	var spotify httpapi.SpotifyResolver
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		spotify = musicapi.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		log.Info().Msg("Spotify client initialized")
	} else {
		log.Info().Msg("Spotify credentials not provided, track lookup disabled")
	}

	var youtube httpapi.YouTubeResolver
	if cfg.YouTubeAPIKey != "" {
		youtube = musicapi.NewYouTubeClient(cfg.YouTubeAPIKey)
		log.Info().Msg("YouTube client initialized")
	} else {
		log.Info().Msg("YouTube API key not provided, video lookup disabled")
	}

	server := httpapi.New(songSvc, rankingSvc, artistSvc, postSvc, dataStore, spotify, youtube, gate)

	handler := server.Routes()
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)

	return handler, nil
}

func newSessionGate(cfg Config) (*auth.Gate, error) {
	secret := []byte(cfg.SessionSecret)
	if cfg.AdminPasswordHash != "" {
		return auth.New([]byte(cfg.AdminPasswordHash), secret, cfg.SessionTTL), nil
	}
	return auth.NewFromPassword(cfg.AdminPassword, secret, cfg.SessionTTL)
}
