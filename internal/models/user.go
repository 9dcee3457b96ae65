package models

import (
	"database/sql"
	"time"
)

// User is the database representation of a bulletin board account. Nullable
// columns use sql.Null types; conversion to the domain type happens in the
// repository layer.
type User struct {
	UserID            string         `db:"user_id"`
	Email             string         `db:"email"`
	Username          string         `db:"username"`
	PasswordHash      sql.NullString `db:"password_hash"`
	AuthProvider      sql.NullString `db:"auth_provider"`
	ProviderUserID    sql.NullString `db:"provider_user_id"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	IsVerified        bool           `db:"is_verified"`
	CreatedAt         time.Time      `db:"created_at"`
}
