package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/linkstash/internal/middleware"
	"github.com/crucial707/linkstash/internal/models"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// BookmarkHandler
// ==========================
type BookmarkHandler struct {
	Bookmarks *repo.BookmarkRepo
}

// ==========================
// List All Bookmarks (open read)
// ==========================
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.Bookmarks.List(r.Context())
	if err != nil {
		slog.Error("list bookmarks", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeBookmarkList(w, bookmarks)
}

// ==========================
// List My Bookmarks
// ==========================
func (h *BookmarkHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookmarks, err := h.Bookmarks.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list my bookmarks", "error", err, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeBookmarkList(w, bookmarks)
}

// ==========================
// Get Bookmark By ID (open read; absent id is 200 with an empty body)
// ==========================
func (h *BookmarkHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	bookmark, err := h.Bookmarks.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			w.WriteHeader(http.StatusOK)
			return
		}
		slog.Error("get bookmark", "error", err, "id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookmark)
}

// ==========================
// Create Bookmark
// ==========================
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Link        string `json:"link" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	bookmark, err := h.Bookmarks.Create(r.Context(), userID, input.Title, input.Description, input.Link)
	if err != nil {
		slog.Error("create bookmark", "error", err, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bookmark)
}

// ==========================
// Update Bookmark (owner only)
// ==========================
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	var input struct {
		Title       *string `json:"title" validate:"omitempty,min=1"`
		Description *string `json:"description"`
		Link        *string `json:"link" validate:"omitempty,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	bookmark, err := h.Bookmarks.UpdateOwned(r.Context(), id, userID, input.Title, input.Description, input.Link)
	if err != nil {
		// Missing id and foreign owner are the same zero-row outcome; answer
		// identically so ownership of other users' bookmarks is not revealed.
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, ErrMessageInvalidBookmark, http.StatusBadRequest)
			return
		}
		slog.Error("update bookmark", "error", err, "id", id, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookmark)
}

// ==========================
// Delete Bookmark (owner only)
// ==========================
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid bookmark id", http.StatusBadRequest)
		return
	}

	if err := h.Bookmarks.DeleteOwned(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, ErrMessageInvalidBookmark, http.StatusBadRequest)
			return
		}
		slog.Error("delete bookmark", "error", err, "id", id, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// writeBookmarkList encodes a list response, normalizing nil to [] so an empty
// result is a JSON array rather than null.
func writeBookmarkList(w http.ResponseWriter, bookmarks []models.Bookmark) {
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookmarks)
}
