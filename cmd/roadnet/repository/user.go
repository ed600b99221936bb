package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gridworks/roadnet/common/apperr"
	"github.com/gridworks/roadnet/common/db"
	"github.com/gridworks/roadnet/common/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *db.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with an already-hashed credential.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, is_admin, created_at, updated_at
	`, username, passwordHash).Scan(&user.ID, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, apperr.DuplicateName("user '%s' already exists", username)
		}
		return nil, apperr.Storage(err)
	}

	return user, nil
}

// FindByUsername retrieves a user by handle.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, `WHERE username = $1`, username)
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) findUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}

	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, is_admin, created_at, updated_at
		FROM users
	`+where, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user %v not found", arg)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return user, nil
}
