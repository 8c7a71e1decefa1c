package models

import "time"

// User is the persisted account record. PasswordHash never leaves the service.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Roles        []Role    `db:"roles"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// PublicUser is the projection returned by register and login.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// UserView is the projection returned by the admin endpoints.
type UserView struct {
	PublicUser
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    append([]Role(nil), u.Roles...),
	}
}

func (u *User) View() UserView {
	return UserView{
		PublicUser: u.Public(),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (u *User) Clone() *User {
	c := *u
	c.Roles = append([]Role(nil), u.Roles...)
	return &c
}

// NewUser is the input to UserStore.Create.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
}

// UserPatch describes a partial update. Nil fields are left untouched.
// Password is plaintext here; the service hashes it into PasswordHash
// before the patch reaches the store.
type UserPatch struct {
	Username     *string
	Email        *string
	Password     *string
	PasswordHash *string
	Roles        []Role
	IsActive     *bool
}

// IsEmpty reports whether the patch changes nothing in storage.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil && p.Roles == nil && p.IsActive == nil
}

// Identity is the caller's identity as resolved for one request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}
