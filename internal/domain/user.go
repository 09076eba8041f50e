package domain

import (
	"strings"
	"time"
)

// Role enumerates application-level access roles.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// DefaultRole is assigned to users created on first login.
const DefaultRole = RoleAgent

var roleRank = map[Role]int{
	RoleAgent:   1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role satisfies the required role, treating
// higher-privileged roles as satisfying lower requirements.
func (r Role) AtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

// User is the directory record for a field agent or manager. The ID is the
// stable subject issued by the external identity provider.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName joins the name fields, falling back to "Unknown" when both are
// empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return "Unknown"
	}
	return name
}
