package models

import (
	"fmt"
	"strings"
)

// Role is a named permission class attached to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// AllRoles lists the closed set of roles in privilege order.
var AllRoles = []Role{RoleUser, RoleModerator, RoleAdmin}

// DefaultRoles is assigned to every newly registered user.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// HasAnyRole reports whether have and want share at least one role.
func HasAnyRole(have, want []Role) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// RolesToStrings converts roles for storage drivers that want plain strings.
func RolesToStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings is the inverse of RolesToStrings. Unknown values are an error
// so a corrupted row never grants an unexpected role.
func RolesFromStrings(values []string) ([]Role, error) {
	out := make([]Role, 0, len(values))
	for _, v := range values {
		r, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
