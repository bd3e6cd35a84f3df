package repository

import (
	"database/sql"
	"errors"
)

// ErrDuplicateEmail is returned when an insert collides with the unique
// index on users.email.
var ErrDuplicateEmail = errors.New("duplicate email")

// Repository provides database operations.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id              BIGSERIAL PRIMARY KEY,
//	    first_name      TEXT NOT NULL,
//	    last_name       TEXT NOT NULL,
//	    email           TEXT NOT NULL UNIQUE,
//	    password_hash   TEXT NOT NULL,
//	    profile_picture TEXT,
//	    role            TEXT NOT NULL DEFAULT 'user',
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
//	CREATE TABLE tasks (
//	    id           BIGSERIAL PRIMARY KEY,
//	    title        TEXT NOT NULL,
//	    description  TEXT NOT NULL DEFAULT '',
//	    status       TEXT NOT NULL DEFAULT 'pending',
//	    priority     TEXT NOT NULL DEFAULT 'medium',
//	    due_date     TIMESTAMPTZ,
//	    created_by   BIGINT NOT NULL REFERENCES users (id),
//	    assigned_to  BIGINT REFERENCES users (id),
//	    tags         TEXT[] NOT NULL DEFAULT '{}',
//	    completed_at TIMESTAMPTZ,
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
