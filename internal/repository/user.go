package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/taskhive/task-service/internal/models"
)

const userColumns = `id, first_name, last_name, email, password_hash, profile_picture, role, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.ProfilePicture, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, profile_picture, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.ProfilePicture, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email, or nil when no user matches
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindUserByID retrieves a user by id, or nil when no user matches
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// UpdateUserProfile persists the mutable profile fields of user
func (r *Repository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, profile_picture = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.ProfilePicture, user.ID).
		Scan(&user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return nil
}

// ListUsers retrieves every user, newest first
func (r *Repository) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.PasswordHash, &user.ProfilePicture, &user.Role, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListProfilePictures retrieves every profile picture URL currently referenced
func (r *Repository) ListProfilePictures(ctx context.Context) ([]string, error) {
	query := `SELECT profile_picture FROM users WHERE profile_picture IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile pictures: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan profile picture: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profile pictures: %w", err)
	}
	return urls, nil
}
