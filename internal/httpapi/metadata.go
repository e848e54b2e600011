package httpapi

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"songrank/internal/musicapi"
	"songrank/internal/store"
)

func (s *Server) handleSpotifyLookup(w http.ResponseWriter, r *http.Request) {
	if s.spotify == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "spotify lookup not configured"})
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}

	meta, err := s.spotify.LookupTrack(r.Context(), rawURL)
	if err != nil {
		writeJSON(w, lookupErrorStatus(err), errorResponse{Error: lookupErrorMessage(err)})
		return
	}

	// Remember each attributed artist's image and Spotify id so the
	// rankings page can show them. A failed upsert does not fail the
	// lookup; the admin can still save the song.
	for _, ref := range meta.Artists {
		artist := store.Artist{
			Name:      ref.Name,
			ImageURL:  ref.ImageURL,
			SpotifyID: ref.SpotifyID,
		}
		if err := s.artists.Upsert(r.Context(), artist); err != nil {
			log.Warn().Err(err).Str("artist", ref.Name).Msg("artist upsert failed during lookup")
		}
	}

	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleYouTubeLookup(w http.ResponseWriter, r *http.Request) {
	if s.youtube == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "youtube lookup not configured"})
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}

	meta, err := s.youtube.LookupVideo(r.Context(), rawURL)
	if err != nil {
		writeJSON(w, lookupErrorStatus(err), errorResponse{Error: lookupErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

// lookupErrorStatus separates bad input from provider trouble: a URL the
// caller can fix is a 400, a missing track a 404, anything else a 502.
func lookupErrorStatus(err error) int {
	switch {
	case errors.Is(err, musicapi.ErrInvalidTrackURL):
		return http.StatusBadRequest
	case errors.Is(err, musicapi.ErrTrackNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func lookupErrorMessage(err error) string {
	switch {
	case errors.Is(err, musicapi.ErrInvalidTrackURL):
		return err.Error()
	case errors.Is(err, musicapi.ErrTrackNotFound):
		return "track not found"
	default:
		return "could not fetch track metadata"
	}
}
