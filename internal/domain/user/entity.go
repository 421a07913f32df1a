package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of principal roles. A user signs up as a candidate
// or a hiring manager; admin is only ever assigned by another admin.
type Role string

const (
	RoleCandidate     Role = "candidate"
	RoleHiringManager Role = "hiring_manager"
	RoleAdmin         Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidate, RoleHiringManager, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// OneOf reports whether the role is in the allowed set. This is the only
// role check in the codebase; route guards and usecases all go through it.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Principal is the authenticated actor a verified credential resolves to.
// Claims are trusted for the request's lifetime; the full user record is
// not re-fetched on every call.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

type User struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          Role
	ContactNumber string
	ResumeURL     string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
