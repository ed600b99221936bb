package models

import "time"

// User is a registered account. Users own networks; ownership is the only
// relationship this service tracks (deleting users is out of scope).
// Maps to: users table
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Identity is the resolved caller of a request. A nil *Identity means the
// caller is anonymous. The identity resolver is the only component that
// inspects credentials; everything downstream sees this struct.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserProjection is the caller-facing shape of a user.
type UserProjection struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Projection returns the caller-facing shape of u.
func (u *User) Projection() *UserProjection {
	return &UserProjection{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// Identity returns the resolver output for u.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}
