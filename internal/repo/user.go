package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/linkstash/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
// A duplicate email surfaces as a *pq.Error with code 23505 from the INSERT
// itself; the email is deliberately not pre-checked so there is no race
// between check and insert.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email, passwordHash).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Update Profile
// ==========================
// Nil fields are left unchanged (COALESCE partial patch).
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, email, firstName, lastName *string) (*models.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($1, email),
		    first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    updated_at = now()
		WHERE id = $4
		RETURNING id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email, firstName, lastName, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}
