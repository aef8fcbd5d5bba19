package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

type stubUsers struct {
	users map[string]models.User
}

func (s stubUsers) Create(context.Context, *models.User) error { return nil }
// unreachableID simulates a store failure such as a Mongo timeout.
const unreachableID = "unreachable"

func (s stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if id == unreachableID {
		return nil, fmt.Errorf("failed to fetch user: %w", context.DeadlineExceeded)
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
func (s stubUsers) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (s stubUsers) List(context.Context, models.PageRequest) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s stubUsers) Update(context.Context, *models.User) error  { return nil }
func (s stubUsers) MarkVerified(context.Context, string) error { return nil }
func (s stubUsers) Delete(context.Context, string) error       { return nil }

type stubAdmins struct {
	admins map[string]models.Admin
}

func (s stubAdmins) Create(context.Context, *models.Admin) error { return nil }
func (s stubAdmins) GetByID(_ context.Context, id string) (*models.Admin, error) {
	if id == unreachableID {
		return nil, fmt.Errorf("failed to fetch admin: %w", context.DeadlineExceeded)
	}
	a, ok := s.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}
func (s stubAdmins) GetByEmail(context.Context, string) (*models.Admin, error) { return nil, nil }
func (s stubAdmins) CountAdmins(context.Context) (int64, error)               { return int64(len(s.admins)), nil }

func newGuardedRouter(tokens *utils.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := stubUsers{users: map[string]models.User{
		"u1": {ID: "u1", Name: "User", Email: "u@x.com"},
	}}
	admins := stubAdmins{admins: map[string]models.Admin{
		"a1": {ID: "a1", Name: "Admin", Email: "a@x.com", IsAdmin: true},
	}}

	r := gin.New()
	guard := RequireAuth(tokens, users, admins)
	whoami := func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.String(http.StatusOK, identity.ID+":"+identity.Role)
	}
	r.GET("/me", guard, whoami)
	r.GET("/admin", guard, RequireAdmin(), whoami)
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	router := newGuardedRouter(tokens)

	userToken, _ := tokens.Issue("u1", models.RoleUser)
	adminToken, _ := tokens.Issue("a1", models.RoleAdmin)
	deletedToken, _ := tokens.Issue("u2", models.RoleUser)
	userAsAdmin, _ := tokens.Issue("u1", models.RoleAdmin)
	storeDownUser, _ := tokens.Issue(unreachableID, models.RoleUser)
	storeDownAdmin, _ := tokens.Issue(unreachableID, models.RoleAdmin)
	foreignToken, _ := utils.NewTokenIssuer("other-secret", time.Hour).Issue("u1", models.RoleUser)

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "no header", path: "/me", wantCode: http.StatusUnauthorized},
		{name: "not bearer", path: "/me", header: "Basic abc", wantCode: http.StatusUnauthorized},
		{name: "empty bearer", path: "/me", header: "Bearer ", wantCode: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "foreign signature", path: "/me", header: "Bearer " + foreignToken, wantCode: http.StatusUnauthorized},
		{name: "deleted account", path: "/me", header: "Bearer " + deletedToken, wantCode: http.StatusUnauthorized},
		{name: "role claim does not match collection", path: "/me", header: "Bearer " + userAsAdmin, wantCode: http.StatusUnauthorized},
		{name: "user store failure", path: "/me", header: "Bearer " + storeDownUser, wantCode: http.StatusInternalServerError},
		{name: "admin store failure", path: "/admin", header: "Bearer " + storeDownAdmin, wantCode: http.StatusInternalServerError},
		{name: "user", path: "/me", header: "Bearer " + userToken, wantCode: http.StatusOK, wantBody: "u1:user"},
		{name: "admin", path: "/me", header: "Bearer " + adminToken, wantCode: http.StatusOK, wantBody: "a1:admin"},
		{name: "user on admin route", path: "/admin", header: "Bearer " + userToken, wantCode: http.StatusForbidden},
		{name: "admin on admin route", path: "/admin", header: "Bearer " + adminToken, wantCode: http.StatusOK, wantBody: "a1:admin"},
		{name: "anonymous on admin route", path: "/admin", wantCode: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
