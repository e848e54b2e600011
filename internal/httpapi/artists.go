package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"songrank/internal/app/artists"
	"songrank/internal/store"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	list, err := s.artists.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load artists"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Artists []store.Artist `json:"artists"`
	}{Artists: list})
}

func (s *Server) handleUpsertArtist(w http.ResponseWriter, r *http.Request) {
	var artist store.Artist
	if err := json.NewDecoder(r.Body).Decode(&artist); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if strings.TrimSpace(artist.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "artist name is required"})
		return
	}

	if err := s.artists.Upsert(r.Context(), artist); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not save artist"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArtistSongs(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing artist name"})
		return
	}

	list, err := s.artists.Songs(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load artist songs"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []artists.RankedSong `json:"songs"`
	}{Songs: list})
}
