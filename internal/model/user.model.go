package model

import (
	"slices"
	"strings"
	"time"
)

type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"full_name"`
	Role              Role      `json:"role"`
	AllowedBusinesses []int64   `json:"allowed_businesses"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) AllowedIn(businessID int64) bool {
	return u != nil && slices.Contains(u.AllowedBusinesses, businessID)
}

// UserCreateRequest is used by the provisioning CLI.
type UserCreateRequest struct {
	Username   string
	Password   string
	FullName   string
	Role       Role
	Businesses []int64
}

func (r UserCreateRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return invalid("username is required")
	}
	if len(r.Password) < 6 {
		return invalid("password must be at least 6 characters")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return invalid("full_name is required")
	}
	if !r.Role.Valid() {
		return invalid("unknown role %q", r.Role)
	}
	return nil
}

type Business struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	AllowedUserIDs []int64 `json:"allowed_user_ids"`
}
