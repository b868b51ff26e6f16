package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/linkstash/internal/models"
)

// ==========================
// BookmarkRepo
// ==========================
type BookmarkRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewBookmarkRepo(db *sql.DB) *BookmarkRepo {
	return &BookmarkRepo{DB: db}
}

const bookmarkColumns = `id, user_id, title, COALESCE(description, ''), link, created_at, updated_at`

func scanBookmark(row *sql.Row) (models.Bookmark, error) {
	var b models.Bookmark
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ==========================
// Create Bookmark
// ==========================
func (r *BookmarkRepo) Create(ctx context.Context, userID int, title, description, link string) (models.Bookmark, error) {
	return scanBookmark(r.DB.QueryRowContext(ctx,
		`INSERT INTO bookmarks (user_id, title, description, link)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING `+bookmarkColumns,
		userID, title, description, link,
	))
}

// ==========================
// Get Bookmark By ID
// ==========================
func (r *BookmarkRepo) GetByID(ctx context.Context, id int) (models.Bookmark, error) {
	return scanBookmark(r.DB.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+`
		 FROM bookmarks
		 WHERE id = $1`,
		id,
	))
}

// ==========================
// Update Owned Bookmark
// ==========================
// Ownership check and mutation are one conditional statement: a bookmark that
// does not exist and one owned by someone else both match zero rows, which
// comes back as sql.ErrNoRows. Nil patch fields are left unchanged.
func (r *BookmarkRepo) UpdateOwned(ctx context.Context, id, userID int, title, description, link *string) (models.Bookmark, error) {
	return scanBookmark(r.DB.QueryRowContext(ctx,
		`UPDATE bookmarks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     link = COALESCE($3, link),
		     updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+bookmarkColumns,
		title, description, link, id, userID,
	))
}

// ==========================
// Delete Owned Bookmark
// ==========================
// Same ownership-scoped single statement as UpdateOwned; zero affected rows
// is reported as sql.ErrNoRows.
func (r *BookmarkRepo) DeleteOwned(ctx context.Context, id, userID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ==========================
// List All Bookmarks
// ==========================
func (r *BookmarkRepo) List(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

// ==========================
// List Bookmarks By User
// ==========================
func (r *BookmarkRepo) ListByUser(ctx context.Context, userID int) ([]models.Bookmark, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

func collectBookmarks(rows *sql.Rows) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}
