package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole_AdminMarker(t *testing.T) {
	role := ResolveRole(Metadata{Role: "admin"})
	assert.Equal(t, RoleAdmin, role)
}

func TestResolveRole_FailClosed(t *testing.T) {
	// Anything that is not exactly "admin" must resolve to client.
	cases := []string{"", "client", "Admin", "ADMIN", "administrator", "superuser", " admin"}
	for _, raw := range cases {
		assert.Equal(t, RoleClient, ResolveRole(Metadata{Role: raw}), "role marker %q", raw)
	}
}

func TestMetadata_IsSuperAdmin(t *testing.T) {
	assert.True(t, Metadata{SuperAdmin: true}.IsSuperAdmin())
	// Absent flag denies.
	assert.False(t, Metadata{}.IsSuperAdmin())
	assert.False(t, Metadata{Role: "admin"}.IsSuperAdmin())
}

func TestNormalize_NameFallsBackToEmailLocalPart(t *testing.T) {
	now := time.Now()
	user := Normalize(RawIdentity{ID: "u1", Email: "jane@co.com"}, now)

	assert.Equal(t, "jane", user.Name)
	assert.Equal(t, RoleClient, user.Role)
	assert.Equal(t, DefaultAvatarURL, user.Avatar)
	assert.Equal(t, now, user.RefreshedAt)
}

func TestNormalize_ExplicitMetadataWins(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raw := RawIdentity{
		ID:    "u2",
		Email: "rob@agency.io",
		Metadata: Metadata{
			Role:      "admin",
			Name:      "Rob Chen",
			AvatarURL: "https://cdn.example.com/rob.png",
		},
		CreatedAt: created,
	}

	user := Normalize(raw, time.Now())

	assert.Equal(t, "Rob Chen", user.Name)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Equal(t, "https://cdn.example.com/rob.png", user.Avatar)
	assert.Equal(t, created, user.CreatedAt)
}

func TestNormalize_EmailWithoutAtFallsBackToUser(t *testing.T) {
	user := Normalize(RawIdentity{ID: "u3", Email: "not-an-email"}, time.Now())
	assert.Equal(t, "User", user.Name)
}

func TestSession_HasRoleIsStrictEquality(t *testing.T) {
	admin := Session{User: User{Role: RoleAdmin}}
	client := Session{User: User{Role: RoleClient}}

	assert.True(t, admin.HasRole(RoleAdmin))
	assert.False(t, admin.HasRole(RoleClient))
	assert.True(t, client.HasRole(RoleClient))
	assert.False(t, client.HasRole(RoleAdmin))
}
