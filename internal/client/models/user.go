// Package models holds the client-side view of authkeeper API payloads.
package models

import (
	"slices"
	"time"
)

// User is a user as returned by the API. Administrative listings fill the
// activity and timestamp fields; register, login and profile responses leave
// them zero.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  *bool     `json:"is_active,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasRole reports whether role is among u's roles.
func (u *User) HasRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}

// Session is the payload returned by register and login.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
