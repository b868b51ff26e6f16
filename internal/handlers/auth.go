package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/linkstash/internal/metrics"
	"github.com/crucial707/linkstash/internal/password"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/crucial707/linkstash/internal/token"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

var validate = validator.New()

// pq error code for unique_violation
const pqUniqueViolation = "23505"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *token.Issuer
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ==========================
// Signup (argon2id hash + create + issue token)
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		slog.Error("signup: hash password", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Email, hash)
	if err != nil {
		// The unique constraint is the source of truth for duplicates; there is
		// no pre-check, so this is the only place the conflict can surface.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			metrics.IncSignups("duplicate")
			JSONError(w, ErrMessageCredentialsTaken, http.StatusBadRequest)
			return
		}
		slog.Error("signup: create user", "error", err)
		metrics.IncSignups("error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	signed, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("signup: issue token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncSignups("created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tokenResponse{AccessToken: signed})
}

// ==========================
// Signin (lookup + verify + issue token)
// ==========================
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", validationFields(err), http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		// An unknown email answers exactly like a wrong password.
		if errors.Is(err, sql.ErrNoRows) {
			metrics.IncLogins("invalid")
			JSONError(w, ErrMessageInvalidCredentials, http.StatusUnauthorized)
			return
		}
		slog.Error("signin: lookup user", "error", err)
		metrics.IncLogins("error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := password.Verify(input.Password, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			metrics.IncLogins("invalid")
			JSONError(w, ErrMessageInvalidCredentials, http.StatusUnauthorized)
			return
		}
		slog.Error("signin: verify password", "error", err)
		metrics.IncLogins("error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	signed, err := h.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("signin: issue token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncLogins("ok")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{AccessToken: signed})
}

// validationFields flattens validator errors into a field -> rule map for JSONValidationError.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
