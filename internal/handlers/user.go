package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crucial707/linkstash/internal/middleware"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/lib/pq"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users *repo.UserRepo
}

// ==========================
// Get Me
// ==========================
// The user was loaded fresh by the JWT middleware; the password hash never
// serializes thanks to the model's `json:"-"` tag.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ==========================
// Update Me (partial profile patch)
// ==========================
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Email     *string `json:"email" validate:"omitempty,email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, input.Email, input.FirstName, input.LastName)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			JSONError(w, ErrMessageCredentialsTaken, http.StatusBadRequest)
			return
		}
		slog.Error("update me", "error", err, "user_id", user.ID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
