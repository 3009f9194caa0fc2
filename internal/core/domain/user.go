package domain

import (
	"strings"
	"time"
)

// Role is a coarse permission label used for route-level access control.
// Roles are always stored and compared in lower case.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleUser, RoleHost, RoleAdmin:
		return r, true
	}
	return r, false
}

// RoleSet is the normalized form of one or many roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from roles, lower-casing each one.
// Empty values are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		n := Role(strings.ToLower(strings.TrimSpace(string(r))))
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Intersects reports whether the two sets share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	for r := range s {
		if _, ok := other[r]; ok {
			return true
		}
	}
	return false
}

// Strings returns the roles in the set in a stable order (user, host, admin, then others).
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, r := range []Role{RoleUser, RoleHost, RoleAdmin} {
		if _, ok := s[r]; ok {
			out = append(out, string(r))
		}
	}
	for r := range s {
		if r != RoleUser && r != RoleHost && r != RoleAdmin {
			out = append(out, string(r))
		}
	}
	return out
}

// User is the authenticated principal. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether u holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && Role(strings.ToLower(string(u.Role))) == RoleAdmin
}

// CanMutate is the ownership rule shared by every owned resource: the actor
// must be the recorded owner or an admin.
func CanMutate(actor *User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || (actor.ID != "" && actor.ID == ownerID)
}
