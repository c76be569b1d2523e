package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nardonidigital/agency-api/internal/adapters/devauth"
	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/service"
)

type fakeTeamRepo struct {
	created []*model.TeamMember
	deleted []string
}

func (f *fakeTeamRepo) Create(_ context.Context, req *model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	member := &model.TeamMember{
		ID:        "tm-1",
		Name:      req.Name,
		Title:     req.Title,
		Visible:   true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.created = append(f.created, member)
	return member, nil
}

func (f *fakeTeamRepo) GetByID(context.Context, string) (*model.TeamMember, error) {
	return &model.TeamMember{ID: "tm-1", Name: "Ana", Title: "Strategist", Visible: true}, nil
}

func (f *fakeTeamRepo) List(context.Context, bool) ([]*model.TeamMember, error) {
	return []*model.TeamMember{}, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, id string, _ model.UpdateTeamMemberRequest) (*model.TeamMember, error) {
	return &model.TeamMember{ID: id}, nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id string) (bool, error) {
	f.deleted = append(f.deleted, id)
	return true, nil
}

// teamFixture wires the team write route the way the router does: session
// middleware, admin role guard, then the super-admin guard.
type teamFixture struct {
	repo    *fakeTeamRepo
	handler http.Handler
	login   func(t *testing.T) *http.Cookie
}

func newTeamFixture(t *testing.T, superAdmin bool) *teamFixture {
	t.Helper()

	f := newAuthFixture(t, devauth.Config{
		UserID:     "dev-admin",
		Email:      "admin@example.com",
		Password:   "s3cret-pass",
		Role:       "admin",
		SuperAdmin: superAdmin,
	})

	repo := &fakeTeamRepo{}
	team := NewTeamHandler(TeamHandlerOptions{Team: service.NewTeamService(repo)})

	admin := f.mw.RequireRole(domainauth.RoleAdmin)
	handler := f.mw.WithSession(admin(f.mw.RequireSuperAdmin(http.HandlerFunc(team.Create))))

	return &teamFixture{
		repo:    repo,
		handler: handler,
		login: func(t *testing.T) *http.Cookie {
			t.Helper()
			rec := doLogin(t, f, "admin@example.com", "s3cret-pass")
			require.Equal(t, http.StatusOK, rec.Code)
			return rec.Result().Cookies()[0]
		},
	}
}

func postTeamMember(f *teamFixture, cookie *http.Cookie) *httptest.ResponseRecorder {
	body := `{"name":"Ana","title":"Strategist","sort_order":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/team", strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestTeamWrite_SuperAdminAllowed(t *testing.T) {
	f := newTeamFixture(t, true)
	cookie := f.login(t)

	rec := postTeamMember(f, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, "Ana", f.repo.created[0].Name)
}

func TestTeamWrite_PlainAdminDenied(t *testing.T) {
	f := newTeamFixture(t, false)
	cookie := f.login(t)

	rec := postTeamMember(f, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.repo.created)
}

func TestTeamWrite_UnauthenticatedDenied(t *testing.T) {
	f := newTeamFixture(t, true)

	rec := postTeamMember(f, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.repo.created)
}

func TestTeamWrite_StaleTokenDenied(t *testing.T) {
	f := newTeamFixture(t, true)
	_ = f.login(t)

	// A cookie pointing at a session the store does not know is rejected
	// before the privilege check runs.
	rec := postTeamMember(f, &http.Cookie{Name: SessionCookieName, Value: "stale"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.repo.created)
}
