package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/linkstash/internal/middleware"
	"github.com/crucial707/linkstash/internal/models"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/go-chi/chi/v5"
)

var bookmarkCols = []string{"id", "user_id", "title", "description", "link", "created_at", "updated_at"}

// bookmarkRouter mounts the handler on the real route patterns so chi URL
// params resolve, with a stub gate that injects the given user.
func bookmarkRouter(h *BookmarkHandler, user *models.User) chi.Router {
	r := chi.NewRouter()
	r.Get("/bookmarks", h.List)
	r.Get("/bookmarks/{id}", h.GetByID)
	if user != nil {
		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), user)))
				})
			})
			r.Get("/bookmarks/me", h.ListMine)
			r.Post("/bookmarks", h.Create)
			r.Put("/bookmarks/{id}", h.Update)
			r.Delete("/bookmarks/{id}", h.Delete)
		})
	}
	return r
}

func newBookmarkHandler(t *testing.T) (*BookmarkHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &BookmarkHandler{Bookmarks: repo.NewBookmarkRepo(db)}, mock, func() { db.Close() }
}

func TestBookmarkHandler_Create(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO bookmarks`).
		WithArgs(1, "t", "", "l").
		WillReturnRows(sqlmock.NewRows(bookmarkCols).AddRow(10, 1, "t", "", "l", now, now))

	r := bookmarkRouter(h, &models.User{ID: 1, Email: "a@e.com"})

	body, _ := json.Marshal(map[string]string{"title": "t", "link": "l"})
	req := httptest.NewRequest("POST", "/bookmarks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("Create status: got %d, want 201", rr.Code)
	}
	var out models.Bookmark
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != 10 || out.Title != "t" || out.Link != "l" || out.UserID != 1 {
		t.Errorf("unexpected bookmark: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkHandler_Create_Validation(t *testing.T) {
	h, _, done := newBookmarkHandler(t)
	defer done()

	r := bookmarkRouter(h, &models.User{ID: 1})

	cases := []map[string]string{
		{"link": "l"},              // missing title
		{"title": "t"},             // missing link
		{"title": "t", "link": ""}, // empty link
	}
	for _, c := range cases {
		body, _ := json.Marshal(c)
		req := httptest.NewRequest("POST", "/bookmarks", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Create(%v) status: got %d, want 400", c, rr.Code)
		}
	}
}

func TestBookmarkHandler_GetByID_AbsentIsEmptyOK(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM bookmarks`).
		WithArgs(99999).
		WillReturnError(sql.ErrNoRows)

	r := bookmarkRouter(h, nil)

	req := httptest.NewRequest("GET", "/bookmarks/99999", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GetByID status: got %d, want 200", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body for absent id, got: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkHandler_GetByID(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM bookmarks`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(bookmarkCols).AddRow(10, 1, "t", "d", "l", now, now))

	r := bookmarkRouter(h, nil)

	req := httptest.NewRequest("GET", "/bookmarks/10", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GetByID status: got %d, want 200", rr.Code)
	}
	var out models.Bookmark
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != 10 || out.Title != "t" {
		t.Errorf("unexpected bookmark: %+v", out)
	}
}

func TestBookmarkHandler_ListMine_Empty(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM bookmarks WHERE user_id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(bookmarkCols))

	r := bookmarkRouter(h, &models.User{ID: 1})

	req := httptest.NewRequest("GET", "/bookmarks/me", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ListMine status: got %d, want 200", rr.Code)
	}
	// Empty list must serialize as [], not null.
	if got := rr.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got: %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkHandler_Update(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`UPDATE bookmarks`).
		WithArgs("t2", nil, nil, 10, 1).
		WillReturnRows(sqlmock.NewRows(bookmarkCols).AddRow(10, 1, "t2", "", "l", now, now))

	r := bookmarkRouter(h, &models.User{ID: 1})

	body, _ := json.Marshal(map[string]string{"title": "t2"})
	req := httptest.NewRequest("PUT", "/bookmarks/10", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Update status: got %d, want 200", rr.Code)
	}
	var out models.Bookmark
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Partial patch: title changed, link untouched.
	if out.Title != "t2" || out.Link != "l" {
		t.Errorf("unexpected bookmark: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// Editing someone else's bookmark answers exactly like editing a missing id.
func TestBookmarkHandler_Update_NotOwnedAndMissingLookAlike(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	// Bookmark 10 belongs to user 1; user 2 gets zero rows.
	mock.ExpectQuery(`UPDATE bookmarks`).
		WithArgs("t2", nil, nil, 10, 2).
		WillReturnRows(sqlmock.NewRows(bookmarkCols))
	// Bookmark 99999 does not exist at all.
	mock.ExpectQuery(`UPDATE bookmarks`).
		WithArgs("t2", nil, nil, 99999, 2).
		WillReturnRows(sqlmock.NewRows(bookmarkCols))

	r := bookmarkRouter(h, &models.User{ID: 2})

	body, _ := json.Marshal(map[string]string{"title": "t2"})

	req := httptest.NewRequest("PUT", "/bookmarks/10", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	notOwned := httptest.NewRecorder()
	r.ServeHTTP(notOwned, req)

	req = httptest.NewRequest("PUT", "/bookmarks/99999", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, req)

	if notOwned.Code != http.StatusBadRequest || missing.Code != http.StatusBadRequest {
		t.Errorf("statuses: not-owned=%d missing=%d, want 400/400", notOwned.Code, missing.Code)
	}
	if notOwned.Body.String() != missing.Body.String() {
		t.Errorf("responses differ:\n not owned: %s\n missing:   %s",
			notOwned.Body.String(), missing.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkHandler_Delete(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM bookmarks`).
		WithArgs(10, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := bookmarkRouter(h, &models.User{ID: 1})

	req := httptest.NewRequest("DELETE", "/bookmarks/10", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Delete status: got %d, want 200", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected no content, got: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBookmarkHandler_Delete_NotOwned(t *testing.T) {
	h, mock, done := newBookmarkHandler(t)
	defer done()

	mock.ExpectExec(`DELETE FROM bookmarks`).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := bookmarkRouter(h, &models.User{ID: 2})

	req := httptest.NewRequest("DELETE", "/bookmarks/10", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Delete status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "invalid bookmark" {
		t.Errorf("unexpected error: %v", out["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
