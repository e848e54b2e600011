package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"songrank/internal/store"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	// Drafts are only visible to an authenticated admin.
	includeUnpublished := r.URL.Query().Get("include_unpublished") == "true" && s.gate.Authenticated(r)

	list, err := s.posts.List(r.Context(), includeUnpublished)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load posts"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Posts []store.Post `json:"posts"`
	}{Posts: list})
}

func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load post"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load post"})
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post store.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.posts.Create(r.Context(), post)
	if err != nil {
		writeJSON(w, writeErrorStatus(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var post store.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	updated, err := s.posts.Update(r.Context(), r.PathValue("id"), post)
	if err != nil {
		writeJSON(w, writeErrorStatus(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.posts.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not delete post"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
