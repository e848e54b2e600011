package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"songrank/internal/store"
)

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	filter := store.SongFilter{Query: r.URL.Query().Get("q")}

	list, err := s.songs.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load songs"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []store.Song `json:"songs"`
	}{Songs: list})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	detail, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "song not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load song"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAlbumSongs(w http.ResponseWriter, r *http.Request) {
	list, err := s.songs.ListByAlbum(r.Context(), r.PathValue("name"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load album songs"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []store.Song `json:"songs"`
	}{Songs: list})
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var song store.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.songs.Create(r.Context(), song)
	if err != nil {
		writeJSON(w, writeErrorStatus(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var song store.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	updated, err := s.songs.Update(r.Context(), r.PathValue("id"), song)
	if err != nil {
		writeJSON(w, writeErrorStatus(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "song not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not delete song"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRatingHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.DeleteRatingHistory(r.Context(), r.PathValue("historyId")); err != nil {
		if errors.Is(err, store.ErrHistoryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "rating history entry not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not delete rating history entry"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeErrorStatus maps store write failures onto HTTP statuses. Validation
// problems surface with their message so the admin form can show them.
func writeErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrSongNotFound), errors.Is(err, store.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateSong), errors.Is(err, store.ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidSong), errors.Is(err, store.ErrInvalidPost):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
