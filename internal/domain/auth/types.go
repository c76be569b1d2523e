package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// DefaultAvatarURL is the placeholder served when an account has no avatar set.
const DefaultAvatarURL = "/static/img/avatar-placeholder.png"

// Metadata is the typed view of the identity provider's metadata bag.
// All fields are optional on the wire; zero values mean "not set".
type Metadata struct {
	Role       string `json:"role,omitempty"`
	Name       string `json:"name,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	SuperAdmin bool   `json:"super_admin,omitempty"`
}

// IsSuperAdmin reports whether the metadata carries the super-admin privilege.
// Anything other than an explicit true flag denies; this privilege gates
// destructive team-management actions and is never folded into Role.
func (m Metadata) IsSuperAdmin() bool { return m.SuperAdmin }

// RawIdentity is the provider's record of an account, as returned by the
// identity provider adapter. Adapters parse provider payloads into this
// shape at the boundary.
type RawIdentity struct {
	ID        string
	Email     string
	Metadata  Metadata
	CreatedAt time.Time
}

// User is the normalized view of an account derived from a RawIdentity.
// RefreshedAt records when the normalization happened (i.e. the last
// login or identity refresh), not when the underlying profile changed.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// AuthState is the single record of current session status held by the
// auth service. User is nil when unauthenticated; IsAuthenticated is true
// iff User is non-nil.
type AuthState struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
}

// ResolveRole maps provider metadata to an application role.
// Only an exact "admin" marker grants the admin role; missing or
// unrecognized values resolve to client so ambiguity never elevates.
func ResolveRole(m Metadata) Role {
	if m.Role == "admin" {
		return RoleAdmin
	}
	return RoleClient
}

// Normalize derives a User from a raw identity at the given time.
// Name falls back to the email local part, then to "User"; Avatar falls
// back to the static placeholder.
func Normalize(raw RawIdentity, now time.Time) User {
	name := raw.Metadata.Name
	if name == "" {
		if at := strings.Index(raw.Email, "@"); at > 0 {
			name = raw.Email[:at]
		} else {
			name = "User"
		}
	}

	avatar := raw.Metadata.AvatarURL
	if avatar == "" {
		avatar = DefaultAvatarURL
	}

	return User{
		ID:          raw.ID,
		Email:       raw.Email,
		Name:        name,
		Role:        ResolveRole(raw.Metadata),
		Avatar:      avatar,
		CreatedAt:   raw.CreatedAt,
		RefreshedAt: now,
	}
}

// Session is the server-side record persisted for an authenticated browser.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID          string    `json:"id"`
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// HasRole reports whether the session user's role equals the required role.
// Route gating is strict equality: admins do not implicitly gain access to
// client-tier routes, nor the reverse.
func (s Session) HasRole(required Role) bool { return s.User.Role == required }
