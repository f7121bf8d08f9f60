package middleware

import (
	"net/http/httptest"
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *stubUserRepo) Create(u *model.User) error { return nil }
func (r *stubUserRepo) Update(u *model.User) error { return nil }

func (r *stubUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByRole(role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubUserRepo) {
	t.Helper()
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{}}

	app := fiber.New()
	app.Get("/admin-only", RequireAuth(repo), RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals("user_role")})
	})
	return app, repo
}

func tokenFor(t *testing.T, repo *stubUserRepo, role string) string {
	t.Helper()
	u := &model.User{Name: "Test", Email: role + "@example.com", Role: role}
	u.ID = uuid.New()
	repo.users[u.ID] = u

	token, err := jwt.GenerateToken(u.ID, u.Email, u.Name, u.Role)
	require.NoError(t, err)
	return token
}

func TestRequireAuthMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthUnknownAccount(t *testing.T) {
	app, _ := newTestApp(t)

	// Valid signature but the account does not exist in the store
	token, err := jwt.GenerateToken(uuid.New(), "ghost@example.com", "Ghost", model.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireRoleForbidsCustomer(t *testing.T) {
	app, repo := newTestApp(t)
	token := tokenFor(t, repo, model.RoleCustomer)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	app, repo := newTestApp(t)
	token := tokenFor(t, repo, model.RoleAdmin)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRoleReadFromStoreNotToken(t *testing.T) {
	app, repo := newTestApp(t)

	// Token was minted while the account was an admin
	token := tokenFor(t, repo, model.RoleAdmin)

	// Demote the account after token issuance
	for _, u := range repo.users {
		u.Role = model.RoleCustomer
	}

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
