package httpapi

import (
	"net/http"
	"strconv"

	"songrank/internal/app/rankings"
)

func (s *Server) handleArtistRankings(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	sortKey, err := rankings.ParseSortKey(params.Get("sort"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid sort parameter"})
		return
	}

	page := 1
	if raw := params.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page parameter"})
			return
		}
	}

	minSongs := 0
	if raw := params.Get("min_songs"); raw != "" {
		minSongs, err = strconv.Atoi(raw)
		if err != nil || minSongs < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid min_songs parameter"})
			return
		}
	}

	query := rankings.Query{
		Search:   params.Get("q"),
		Sort:     sortKey,
		Page:     page,
		MinSongs: minSongs,
	}

	result, err := s.rankings.List(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load rankings"})
		return
	}

	// A page past the end is clamped to the last page so stale pagination
	// links still land somewhere useful.
	if result.TotalPages > 0 && result.Page > result.TotalPages {
		query.Page = result.TotalPages
		result, err = s.rankings.List(r.Context(), query)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load rankings"})
			return
		}
	}

	writeJSON(w, http.StatusOK, result)
}
